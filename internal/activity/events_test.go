package activity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"miniblog/internal/activity"
	"miniblog/internal/core"
)

func TestDecodeEvent(t *testing.T) {
	t.Parallel()

	event := core.ReactionEvent{
		PublicationID: 7,
		UserID:        uuid.New(),
		Kind:          core.ReactionLike,
		Outcome:       core.OutcomeChangedDislikeToLike,
		Likes:         3,
		Dislikes:      1,
		At:            time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		data, err := activity.EncodeEvent(event)
		require.NoError(t, err)

		decoded, err := activity.DecodeEvent(data)
		require.NoError(t, err)
		require.Equal(t, event, decoded)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		_, err := activity.DecodeEvent([]byte("{"))
		require.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("unknown outcome", func(t *testing.T) {
		t.Parallel()

		_, err := activity.DecodeEvent([]byte(`{"publication_id":1,"user_id":"` + uuid.NewString() + `","kind":"like","outcome":"love"}`))
		require.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("missing publication", func(t *testing.T) {
		t.Parallel()

		_, err := activity.DecodeEvent([]byte(`{"user_id":"` + uuid.NewString() + `","kind":"like","outcome":"like_added"}`))
		require.ErrorIs(t, err, core.ErrInvalidArgument)
	})
}

func TestSubjects(t *testing.T) {
	t.Parallel()

	require.Equal(t, "miniblog.reactions.like_added", activity.Subject(core.OutcomeLikeAdded))
	require.Equal(t, "publication.42", activity.SnapshotKey(42))

	at := time.Unix(0, 99)
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	require.Equal(t,
		"5-00000000-0000-0000-0000-000000000001-99",
		activity.MessageID(core.ReactionEvent{PublicationID: 5, UserID: id, At: at}),
	)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	var publisher core.ActivityPublisher = &activity.Discard{}
	require.NoError(t, publisher.PublishReaction(t.Context(), core.ReactionEvent{}))
}
