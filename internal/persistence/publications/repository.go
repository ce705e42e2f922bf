package publications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"miniblog/internal/core"
	"miniblog/internal/persistence"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Create(ctx context.Context, publication *core.Publication) error {
	return r.DB.Conn(ctx).Create(publication).Error
}

func (r *Repository) Get(ctx context.Context, id uint64) (core.Publication, error) {
	var publication core.Publication
	err := r.withCreator(ctx).Where("publications.id = ?", id).Take(&publication).Error
	return publication, persistence.Translate(err, "publication")
}

func (r *Repository) Lock(ctx context.Context, id uint64) (core.Publication, error) {
	var publication core.Publication
	err := r.DB.Conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&publication).Error
	return publication, persistence.Translate(err, "publication")
}

func (r *Repository) Update(ctx context.Context, publication *core.Publication) error {
	res := r.DB.Conn(ctx).
		Model(&core.Publication{}).
		Where("id = ?", publication.ID).
		Updates(map[string]any{
			"title":          publication.Title,
			"description":    publication.Description,
			"tag":            publication.Tag,
			"last_update_at": publication.LastUpdateAt,
		})
	return rowsOrNotFound(res)
}

func (r *Repository) Delete(ctx context.Context, id uint64) error {
	return rowsOrNotFound(r.DB.Conn(ctx).Where("id = ?", id).Delete(&core.Publication{}))
}

func (r *Repository) DeleteByCreator(ctx context.Context, creatorID uuid.UUID) error {
	return r.DB.Conn(ctx).Where("creator_id = ?", creatorID).Delete(&core.Publication{}).Error
}

func (r *Repository) List(ctx context.Context, filter core.PublicationFilter) ([]core.Publication, error) {
	query := r.withCreator(ctx)

	if filter.CreatorID != uuid.Nil {
		query = query.Where("publications.creator_id = ?", filter.CreatorID)
	}
	if filter.Tag != "" {
		query = query.Where("publications.tag = ?", filter.Tag)
	}
	if !filter.PublishedAfter.IsZero() {
		query = query.Where("publications.published_at >= ?", filter.PublishedAfter)
	}
	if !filter.PublishedBefore.IsZero() {
		query = query.Where("publications.published_at <= ?", filter.PublishedBefore)
	}
	if filter.Viewer != uuid.Nil {
		blocked := r.DB.Conn(ctx).
			Model(&core.BlockedTag{}).
			Select("tag").
			Where("user_id = ?", filter.Viewer)
		query = query.Where("publications.tag NOT IN (?)", blocked)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var publications []core.Publication
	err := query.
		Order("publications.published_at DESC").
		Order("publications.id DESC").
		Find(&publications).Error
	return publications, err
}

func (r *Repository) IncrementViews(ctx context.Context, id uint64) error {
	return rowsOrNotFound(r.DB.Conn(ctx).
		Model(&core.Publication{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")))
}

// AdjustCounters applies relative deltas so concurrent writers never overwrite each other.
func (r *Repository) AdjustCounters(ctx context.Context, id uint64, likes, dislikes int64) error {
	return rowsOrNotFound(r.DB.Conn(ctx).
		Model(&core.Publication{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"likes":    gorm.Expr("likes + ?", likes),
			"dislikes": gorm.Expr("dislikes + ?", dislikes),
		}))
}

func (r *Repository) Recount(ctx context.Context) (int64, error) {
	res := r.DB.Conn(ctx).Exec(`
		UPDATE publications SET
			likes = (
				SELECT COUNT(*) FROM publication_reactions r
				WHERE r.publication_id = publications.id AND r.kind = ?
			),
			dislikes = (
				SELECT COUNT(*) FROM publication_reactions r
				WHERE r.publication_id = publications.id AND r.kind = ?
			)`,
		core.ReactionLike, core.ReactionDislike,
	)
	return res.RowsAffected, res.Error
}

func (r *Repository) withCreator(ctx context.Context) *gorm.DB {
	return r.DB.Conn(ctx).
		Model(&core.Publication{}).
		Select("publications.*, users.nickname AS creator_name").
		Joins("JOIN users ON users.id = publications.creator_id")
}

func rowsOrNotFound(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return persistence.Translate(gorm.ErrRecordNotFound, "publication")
	}
	return nil
}
