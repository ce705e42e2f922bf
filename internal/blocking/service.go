package blocking

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"miniblog/internal/core"
)

var toggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "miniblog_tag_block_toggles_total",
	Help: "Committed tag block toggles by resulting state.",
}, []string{"state"})

// Service keeps the per-user set of blocked tags.
type Service struct {
	Logger *slog.Logger
	DB     core.DB
	Blocks core.BlockedTagRepository
}

func (s *Service) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "blocking.Service")
	return nil
}

// ToggleBlockedTag blocks the tag for the user, or unblocks it when already blocked.
func (s *Service) ToggleBlockedTag(ctx context.Context, userID uuid.UUID, rawTag string) (core.BlockResult, error) {
	tag, err := core.ParseTag(rawTag)
	if err != nil {
		return core.BlockResult{}, err
	}

	result := core.BlockResult{Tag: tag}

	err = s.DB.Transaction(ctx, func(ctx context.Context) error {
		blocked, err := s.Blocks.Exists(ctx, userID, tag)
		if err != nil {
			return err
		}

		if blocked {
			return s.Blocks.Delete(ctx, userID, tag)
		}

		result.Blocked = true
		return s.Blocks.Insert(ctx, userID, tag)
	})
	if err != nil {
		return core.BlockResult{}, err
	}

	state := "unblocked"
	if result.Blocked {
		state = "blocked"
	}
	toggles.WithLabelValues(state).Inc()
	s.Logger.Debug("Tag block toggled", "user", userID, "tag", tag, "state", state)

	return result, nil
}

func (s *Service) BlockedTags(ctx context.Context, userID uuid.UUID) ([]core.Tag, error) {
	tags, err := s.Blocks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []core.Tag{}
	}
	return tags, nil
}
