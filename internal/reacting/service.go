package reacting

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"miniblog/internal/core"
)

var (
	toggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miniblog_reaction_toggles_total",
		Help: "Committed reaction toggles by outcome.",
	}, []string{"outcome"})

	publishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "miniblog_reaction_publish_failures_total",
		Help: "Reaction events that could not be handed to the activity stream.",
	})

	added = map[core.ReactionKind]core.ReactionOutcome{
		core.ReactionLike:    core.OutcomeLikeAdded,
		core.ReactionDislike: core.OutcomeDislikeAdded,
	}
	removed = map[core.ReactionKind]core.ReactionOutcome{
		core.ReactionLike:    core.OutcomeLikeRemoved,
		core.ReactionDislike: core.OutcomeDislikeRemoved,
	}
	changed = map[core.ReactionKind]core.ReactionOutcome{
		core.ReactionLike:    core.OutcomeChangedDislikeToLike,
		core.ReactionDislike: core.OutcomeChangedLikeToDislike,
	}
)

// Service toggles likes and dislikes. A user holds at most one reaction per publication.
type Service struct {
	Logger       *slog.Logger
	DB           core.DB
	Publications core.PublicationRepository
	Ledger       core.ReactionLedger
	Activity     core.ActivityPublisher
}

func (s *Service) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "reacting.Service")
	return nil
}

func (s *Service) Like(ctx context.Context, publicationID uint64, userID uuid.UUID) (core.ReactionResult, error) {
	return s.toggle(ctx, publicationID, userID, core.ReactionLike)
}

func (s *Service) Dislike(ctx context.Context, publicationID uint64, userID uuid.UUID) (core.ReactionResult, error) {
	return s.toggle(ctx, publicationID, userID, core.ReactionDislike)
}

// ListReacted returns an empty slice when the user has no reaction of that kind.
func (s *Service) ListReacted(ctx context.Context, userID uuid.UUID, kind core.ReactionKind) ([]core.Publication, error) {
	publications, err := s.Ledger.Reacted(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	if publications == nil {
		publications = []core.Publication{}
	}
	return publications, nil
}

func (s *Service) toggle(ctx context.Context, publicationID uint64, userID uuid.UUID, kind core.ReactionKind) (core.ReactionResult, error) {
	var result core.ReactionResult

	err := s.DB.Transaction(ctx, func(ctx context.Context) error {
		// Concurrent toggles on the same publication queue up here.
		if _, err := s.Publications.Lock(ctx, publicationID); err != nil {
			return err
		}

		current, err := s.Ledger.Find(ctx, publicationID, userID)
		if err != nil {
			return err
		}

		delta := map[core.ReactionKind]int64{}

		switch {
		case current == nil:
			err = s.Ledger.Insert(ctx, &core.Reaction{
				PublicationID: publicationID,
				UserID:        userID,
				Kind:          kind,
				CreatedAt:     time.Now().UTC(),
			})
			delta[kind] = 1
			result.Outcome = added[kind]

		case current.Kind == kind:
			err = s.Ledger.Delete(ctx, publicationID, userID)
			delta[kind] = -1
			result.Outcome = removed[kind]

		default:
			err = s.Ledger.SetKind(ctx, publicationID, userID, kind)
			delta[kind] = 1
			delta[kind.Opposite()] = -1
			result.Outcome = changed[kind]
		}
		if err != nil {
			return err
		}

		err = s.Publications.AdjustCounters(ctx, publicationID, delta[core.ReactionLike], delta[core.ReactionDislike])
		if err != nil {
			return err
		}

		result.Publication, err = s.Publications.Get(ctx, publicationID)
		return err
	})
	if err != nil {
		return core.ReactionResult{}, err
	}

	toggles.WithLabelValues(string(result.Outcome)).Inc()
	s.Logger.Debug("Reaction toggled",
		"publication", publicationID, "user", userID, "outcome", result.Outcome)

	s.publish(ctx, userID, kind, result)

	return result, nil
}

// publish never fails the toggle, the transaction has already committed.
func (s *Service) publish(ctx context.Context, userID uuid.UUID, kind core.ReactionKind, result core.ReactionResult) {
	if s.Activity == nil {
		return
	}

	err := s.Activity.PublishReaction(ctx, core.ReactionEvent{
		PublicationID: result.Publication.ID,
		UserID:        userID,
		Kind:          kind,
		Outcome:       result.Outcome,
		Likes:         result.Publication.Likes,
		Dislikes:      result.Publication.Dislikes,
		At:            time.Now().UTC(),
	})
	if err != nil {
		publishFailures.Inc()
		s.Logger.Warn("Failed to publish reaction event", "error", err)
	}
}
