package core

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Nickname     string    `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

// Publication is a short post. Likes and Dislikes mirror the row counts of the reaction ledger.
type Publication struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	CreatorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tag          Tag       `gorm:"size:32;not null;default:Others;index"`
	Title        string    `gorm:"size:100;not null"`
	Description  string    `gorm:"size:2000;not null"`
	Views        int64     `gorm:"not null;default:0;check:views >= 0"`
	Likes        int64     `gorm:"not null;default:0;check:likes >= 0"`
	Dislikes     int64     `gorm:"not null;default:0;check:dislikes >= 0"`
	PublishedAt  time.Time `gorm:"not null;index"`
	LastUpdateAt *time.Time

	// CreatorName is filled by read queries joining users.
	CreatorName string `gorm:"->;-:migration"`

	Creator *User `gorm:"foreignKey:CreatorID"`
}

func (Publication) TableName() string {
	return "publications"
}

// Reaction is a ledger row: one per (publication, user) pair.
type Reaction struct {
	PublicationID uint64       `gorm:"primaryKey;autoIncrement:false"`
	UserID        uuid.UUID    `gorm:"type:uuid;primaryKey;index"`
	Kind          ReactionKind `gorm:"size:16;not null;check:kind = 'like' OR kind = 'dislike'"`
	CreatedAt     time.Time    `gorm:"not null"`

	Publication *Publication `gorm:"foreignKey:PublicationID"`
	User        *User        `gorm:"foreignKey:UserID"`
}

func (Reaction) TableName() string {
	return "publication_reactions"
}

// BlockedTag records that a user does not want to see a tag.
type BlockedTag struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tag       Tag       `gorm:"size:32;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID"`
}

func (BlockedTag) TableName() string {
	return "blocked_tags"
}

// Models lists every persisted model, in dependency order.
var Models = []any{&User{}, &Publication{}, &Reaction{}, &BlockedTag{}}
