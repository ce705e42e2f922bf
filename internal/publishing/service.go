package publishing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"miniblog/internal/core"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 2000

	DefaultLimit = 10
	MaxLimit     = 100
)

// DaysMode selects which side of the cutoff ByDays returns.
type DaysMode string

const (
	// DaysLast returns publications from the last N days.
	DaysLast DaysMode = "last"
	// DaysUpTo returns publications published N or more days ago.
	DaysUpTo DaysMode = "up"
)

type Draft struct {
	Title       string
	Description string
	Tag         string
}

// Changes holds the fields to update, nil fields are left untouched.
type Changes struct {
	Title       *string
	Description *string
	Tag         *string
}

type Service struct {
	Logger       *slog.Logger
	DB           core.DB
	Publications core.PublicationRepository
	Ledger       core.ReactionLedger
}

func (s *Service) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "publishing.Service")
	return nil
}

func (s *Service) Add(ctx context.Context, creatorID uuid.UUID, draft Draft) (core.Publication, error) {
	tag := core.TagOthers
	if draft.Tag != "" {
		var err error
		if tag, err = core.ParseTag(draft.Tag); err != nil {
			return core.Publication{}, err
		}
	}

	publication := core.Publication{
		CreatorID:   creatorID,
		Tag:         tag,
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		PublishedAt: time.Now().UTC(),
	}
	if err := validate(publication); err != nil {
		return core.Publication{}, err
	}

	if err := s.Publications.Create(ctx, &publication); err != nil {
		return core.Publication{}, err
	}

	s.Logger.Debug("Publication added", "publication", publication.ID, "creator", creatorID)
	return s.Publications.Get(ctx, publication.ID)
}

// Get counts a view and returns the publication.
func (s *Service) Get(ctx context.Context, id uint64) (core.Publication, error) {
	if err := s.Publications.IncrementViews(ctx, id); err != nil {
		return core.Publication{}, err
	}
	return s.Publications.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uint64, userID uuid.UUID, changes Changes) (core.Publication, error) {
	err := s.DB.Transaction(ctx, func(ctx context.Context) error {
		publication, err := s.owned(ctx, id, userID)
		if err != nil {
			return err
		}

		if changes.Title != nil {
			publication.Title = strings.TrimSpace(*changes.Title)
		}
		if changes.Description != nil {
			publication.Description = *changes.Description
		}
		if changes.Tag != nil {
			if publication.Tag, err = core.ParseTag(*changes.Tag); err != nil {
				return err
			}
		}
		if err := validate(publication); err != nil {
			return err
		}

		now := time.Now().UTC()
		publication.LastUpdateAt = &now

		return s.Publications.Update(ctx, &publication)
	})
	if err != nil {
		return core.Publication{}, err
	}

	return s.Publications.Get(ctx, id)
}

// Delete removes the publication together with its reactions.
func (s *Service) Delete(ctx context.Context, id uint64, userID uuid.UUID) error {
	return s.DB.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.owned(ctx, id, userID); err != nil {
			return err
		}
		if err := s.Ledger.DeleteByPublication(ctx, id); err != nil {
			return err
		}
		return s.Publications.Delete(ctx, id)
	})
}

// Latest returns the newest publications, viewer may be uuid.Nil for anonymous callers.
func (s *Service) Latest(ctx context.Context, viewer uuid.UUID, limit int) ([]core.Publication, error) {
	return s.list(ctx, core.PublicationFilter{Viewer: viewer, Limit: clampLimit(limit)})
}

// Mine returns NotFound when the user has not published anything.
func (s *Service) Mine(ctx context.Context, userID uuid.UUID) ([]core.Publication, error) {
	publications, err := s.list(ctx, core.PublicationFilter{CreatorID: userID})
	if err != nil {
		return nil, err
	}
	if len(publications) == 0 {
		return nil, fmt.Errorf("%w: you have no publications yet", core.ErrNotFound)
	}
	return publications, nil
}

func (s *Service) ByTag(ctx context.Context, viewer uuid.UUID, rawTag string) ([]core.Publication, error) {
	tag, err := core.ParseTag(rawTag)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, core.PublicationFilter{Viewer: viewer, Tag: tag})
}

func (s *Service) ByDays(ctx context.Context, viewer uuid.UUID, days int, mode DaysMode) ([]core.Publication, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must not be negative", core.ErrInvalidArgument)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	filter := core.PublicationFilter{Viewer: viewer}

	switch mode {
	case DaysLast, "":
		filter.PublishedAfter = cutoff
	case DaysUpTo:
		filter.PublishedBefore = cutoff
	default:
		return nil, fmt.Errorf("%w: date_of_post must be %q or %q", core.ErrInvalidArgument, DaysLast, DaysUpTo)
	}

	return s.list(ctx, filter)
}

func (s *Service) list(ctx context.Context, filter core.PublicationFilter) ([]core.Publication, error) {
	publications, err := s.Publications.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if publications == nil {
		publications = []core.Publication{}
	}
	return publications, nil
}

func (s *Service) owned(ctx context.Context, id uint64, userID uuid.UUID) (core.Publication, error) {
	publication, err := s.Publications.Lock(ctx, id)
	if err != nil {
		return core.Publication{}, err
	}
	if publication.CreatorID != userID {
		return core.Publication{}, fmt.Errorf("%w: publication %d belongs to another user", core.ErrUnauthorized, id)
	}
	return publication, nil
}

func validate(publication core.Publication) error {
	if publication.Title == "" || utf8.RuneCountInString(publication.Title) > maxTitleLength {
		return fmt.Errorf("%w: title must be 1-%d characters", core.ErrInvalidArgument, maxTitleLength)
	}
	if utf8.RuneCountInString(publication.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", core.ErrInvalidArgument, maxDescriptionLength)
	}
	return nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
