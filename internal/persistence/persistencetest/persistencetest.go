// Package persistencetest opens throwaway in-memory databases carrying the full schema.
package persistencetest

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"miniblog/internal/core"
	"miniblog/internal/persistence"
)

func New(t *testing.T) *persistence.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and serializes transactions.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close() //nolint:errcheck
	})

	require.NoError(t, db.AutoMigrate(core.Models...))

	return persistence.New(db)
}

// CreateUser inserts a user with a throwaway password hash.
func CreateUser(t *testing.T, db *persistence.DB, nickname string) core.User {
	t.Helper()

	user := core.User{
		ID:           uuid.New(),
		Name:         nickname,
		Nickname:     nickname,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Conn(t.Context()).Create(&user).Error)

	return user
}

// CreatePublication inserts a publication published at the given time.
func CreatePublication(t *testing.T, db *persistence.DB, creator core.User, tag core.Tag, publishedAt time.Time) core.Publication {
	t.Helper()

	publication := core.Publication{
		CreatorID:   creator.ID,
		Tag:         tag,
		Title:       "Publication by " + creator.Nickname,
		Description: "Body",
		PublishedAt: publishedAt.UTC(),
	}
	require.NoError(t, db.Conn(t.Context()).Create(&publication).Error)

	return publication
}

// CountReactions counts ledger rows of kind for the publication.
func CountReactions(t *testing.T, db *persistence.DB, publicationID uint64, kind core.ReactionKind) int64 {
	t.Helper()

	var count int64
	err := db.Conn(t.Context()).
		Model(&core.Reaction{}).
		Where("publication_id = ? AND kind = ?", publicationID, kind).
		Count(&count).Error
	require.NoError(t, err)

	return count
}
