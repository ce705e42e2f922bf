package reactions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"miniblog/internal/core"
	"miniblog/internal/persistence"
)

var counterColumns = map[core.ReactionKind]string{
	core.ReactionLike:    "likes",
	core.ReactionDislike: "dislikes",
}

// Ledger stores one reaction row per (publication, user) pair.
type Ledger struct {
	DB core.DB
}

func (l *Ledger) Find(ctx context.Context, publicationID uint64, userID uuid.UUID) (*core.Reaction, error) {
	var reaction core.Reaction
	err := l.DB.Conn(ctx).
		Where("publication_id = ? AND user_id = ?", publicationID, userID).
		Take(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (l *Ledger) Insert(ctx context.Context, reaction *core.Reaction) error {
	err := l.DB.Conn(ctx).Create(reaction).Error
	return persistence.Translate(err, "reaction")
}

func (l *Ledger) SetKind(ctx context.Context, publicationID uint64, userID uuid.UUID, kind core.ReactionKind) error {
	return l.pair(ctx, publicationID, userID).
		Model(&core.Reaction{}).
		Update("kind", kind).Error
}

func (l *Ledger) Delete(ctx context.Context, publicationID uint64, userID uuid.UUID) error {
	return l.pair(ctx, publicationID, userID).Delete(&core.Reaction{}).Error
}

// Reacted lists the publications the user reacted to with kind, newest reaction first.
func (l *Ledger) Reacted(ctx context.Context, userID uuid.UUID, kind core.ReactionKind) ([]core.Publication, error) {
	var publications []core.Publication
	err := l.DB.Conn(ctx).
		Model(&core.Publication{}).
		Select("publications.*, users.nickname AS creator_name").
		Joins("JOIN users ON users.id = publications.creator_id").
		Joins("JOIN publication_reactions ON publication_reactions.publication_id = publications.id").
		Where("publication_reactions.user_id = ? AND publication_reactions.kind = ?", userID, kind).
		Order("publication_reactions.created_at DESC").
		Find(&publications).Error
	return publications, err
}

func (l *Ledger) DeleteByPublication(ctx context.Context, publicationID uint64) error {
	return l.DB.Conn(ctx).Where("publication_id = ?", publicationID).Delete(&core.Reaction{}).Error
}

func (l *Ledger) DeleteByPublicationCreator(ctx context.Context, creatorID uuid.UUID) error {
	owned := l.DB.Conn(ctx).Model(&core.Publication{}).Select("id").Where("creator_id = ?", creatorID)
	return l.DB.Conn(ctx).Where("publication_id IN (?)", owned).Delete(&core.Reaction{}).Error
}

// Retract must run inside a transaction so counters and rows change together.
func (l *Ledger) Retract(ctx context.Context, userID uuid.UUID) error {
	for kind, column := range counterColumns {
		reacted := l.DB.Conn(ctx).
			Model(&core.Reaction{}).
			Select("publication_id").
			Where("user_id = ? AND kind = ?", userID, kind)

		err := l.DB.Conn(ctx).
			Model(&core.Publication{}).
			Where("id IN (?)", reacted).
			UpdateColumn(column, gorm.Expr(column+" - 1")).Error
		if err != nil {
			return err
		}
	}

	return l.DB.Conn(ctx).Where("user_id = ?", userID).Delete(&core.Reaction{}).Error
}

func (l *Ledger) pair(ctx context.Context, publicationID uint64, userID uuid.UUID) *gorm.DB {
	return l.DB.Conn(ctx).Where("publication_id = ? AND user_id = ?", publicationID, userID)
}
