package core

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DB interface {
	// Conn returns the transaction bound to ctx, or a session on the pool.
	Conn(ctx context.Context) *gorm.DB
	// Transaction runs fn in a transaction, the ctx passed to fn carries it.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	DB() (*sql.DB, error)
	EstimatedCount(ctx context.Context, tableName string) (int64, error)
}

type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
	// Version returns the applied schema version, zero when nothing is applied.
	Version(ctx context.Context) (uint, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id uuid.UUID) (User, error)
	GetByNickname(ctx context.Context, nickname string) (User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PublicationFilter narrows listings. Zero values mean no restriction.
type PublicationFilter struct {
	CreatorID       uuid.UUID
	Tag             Tag
	PublishedAfter  time.Time
	PublishedBefore time.Time

	// Viewer hides tags blocked by this user.
	Viewer uuid.UUID
	Limit  int
}

type PublicationRepository interface {
	Create(ctx context.Context, publication *Publication) error
	Get(ctx context.Context, id uint64) (Publication, error)
	// Lock reads the publication holding a row lock until the surrounding transaction ends.
	Lock(ctx context.Context, id uint64) (Publication, error)
	Update(ctx context.Context, publication *Publication) error
	Delete(ctx context.Context, id uint64) error
	DeleteByCreator(ctx context.Context, creatorID uuid.UUID) error
	List(ctx context.Context, filter PublicationFilter) ([]Publication, error)
	IncrementViews(ctx context.Context, id uint64) error
	AdjustCounters(ctx context.Context, id uint64, likes, dislikes int64) error
	// Recount rewrites every counter from the reaction ledger and returns the number of rows touched.
	Recount(ctx context.Context) (int64, error)
}

type ReactionLedger interface {
	// Find returns nil when the pair has no reaction.
	Find(ctx context.Context, publicationID uint64, userID uuid.UUID) (*Reaction, error)
	Insert(ctx context.Context, reaction *Reaction) error
	SetKind(ctx context.Context, publicationID uint64, userID uuid.UUID, kind ReactionKind) error
	Delete(ctx context.Context, publicationID uint64, userID uuid.UUID) error
	Reacted(ctx context.Context, userID uuid.UUID, kind ReactionKind) ([]Publication, error)
	DeleteByPublication(ctx context.Context, publicationID uint64) error
	DeleteByPublicationCreator(ctx context.Context, creatorID uuid.UUID) error
	// Retract removes every reaction of the user and decrements the affected counters.
	Retract(ctx context.Context, userID uuid.UUID) error
}

type BlockedTagRepository interface {
	Exists(ctx context.Context, userID uuid.UUID, tag Tag) (bool, error)
	Insert(ctx context.Context, userID uuid.UUID, tag Tag) error
	Delete(ctx context.Context, userID uuid.UUID, tag Tag) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]Tag, error)
}

type TokenBlacklist interface {
	Add(ctx context.Context, tokenID string, ttl time.Duration) error
	Contains(ctx context.Context, tokenID string) (bool, error)
}

type ActivityPublisher interface {
	PublishReaction(ctx context.Context, event ReactionEvent) error
}
