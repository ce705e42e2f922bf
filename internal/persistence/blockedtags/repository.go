package blockedtags

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"miniblog/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Exists(ctx context.Context, userID uuid.UUID, tag core.Tag) (bool, error) {
	var count int64
	err := r.DB.Conn(ctx).
		Model(&core.BlockedTag{}).
		Where("user_id = ? AND tag = ?", userID, tag).
		Count(&count).Error
	return count > 0, err
}

// Insert is idempotent, a concurrent duplicate is absorbed by the primary key.
func (r *Repository) Insert(ctx context.Context, userID uuid.UUID, tag core.Tag) error {
	return r.DB.Conn(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&core.BlockedTag{UserID: userID, Tag: tag, CreatedAt: time.Now().UTC()}).Error
}

func (r *Repository) Delete(ctx context.Context, userID uuid.UUID, tag core.Tag) error {
	return r.DB.Conn(ctx).
		Where("user_id = ? AND tag = ?", userID, tag).
		Delete(&core.BlockedTag{}).Error
}

func (r *Repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.DB.Conn(ctx).Where("user_id = ?", userID).Delete(&core.BlockedTag{}).Error
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]core.Tag, error) {
	var tags []core.Tag
	err := r.DB.Conn(ctx).
		Model(&core.BlockedTag{}).
		Where("user_id = ?", userID).
		Order("tag").
		Pluck("tag", &tags).Error
	return tags, err
}
