package blocking_test

import (
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"miniblog/internal/blocking"
	"miniblog/internal/core"
	"miniblog/internal/persistence"
	"miniblog/internal/persistence/blockedtags"
	"miniblog/internal/persistence/persistencetest"
)

func newService(t *testing.T) (*blocking.Service, *persistence.DB) {
	t.Helper()

	db := persistencetest.New(t)

	return &blocking.Service{
		Logger: slog.New(slog.DiscardHandler),
		DB:     db,
		Blocks: &blockedtags.Repository{DB: db},
	}, db
}

func TestService_ToggleBlockedTag(t *testing.T) {
	t.Parallel()

	t.Run("blocks then unblocks", func(t *testing.T) {
		t.Parallel()

		service, db := newService(t)
		user := persistencetest.CreateUser(t, db, "alice").ID

		result, err := service.ToggleBlockedTag(t.Context(), user, "Technology")
		require.NoError(t, err)
		require.True(t, result.Blocked)
		require.Equal(t, core.TagTechnology, result.Tag)

		tags, err := service.BlockedTags(t.Context(), user)
		require.NoError(t, err)
		require.Equal(t, []core.Tag{core.TagTechnology}, tags)

		result, err = service.ToggleBlockedTag(t.Context(), user, "Technology")
		require.NoError(t, err)
		require.False(t, result.Blocked)

		tags, err = service.BlockedTags(t.Context(), user)
		require.NoError(t, err)
		require.Empty(t, tags)
	})

	t.Run("users are independent", func(t *testing.T) {
		t.Parallel()

		service, db := newService(t)
		alice := persistencetest.CreateUser(t, db, "alice").ID
		bob := persistencetest.CreateUser(t, db, "bob").ID

		_, err := service.ToggleBlockedTag(t.Context(), alice, "Sports")
		require.NoError(t, err)

		result, err := service.ToggleBlockedTag(t.Context(), bob, "Sports")
		require.NoError(t, err)
		require.True(t, result.Blocked)

		_, err = service.ToggleBlockedTag(t.Context(), alice, "Sports")
		require.NoError(t, err)

		tags, err := service.BlockedTags(t.Context(), bob)
		require.NoError(t, err)
		require.Equal(t, []core.Tag{core.TagSports}, tags)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		service, _ := newService(t)

		_, err := service.ToggleBlockedTag(t.Context(), uuid.New(), "Sports")
		require.Error(t, err)
	})

	t.Run("unknown tag", func(t *testing.T) {
		t.Parallel()

		service, db := newService(t)
		user := persistencetest.CreateUser(t, db, "alice").ID

		_, err := service.ToggleBlockedTag(t.Context(), user, "Gardening")
		require.ErrorIs(t, err, core.ErrInvalidArgument)

		tags, err := service.BlockedTags(t.Context(), user)
		require.NoError(t, err)
		require.Empty(t, tags)
	})
}
