package activity

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"miniblog/internal/core"
	"miniblog/internal/nats"
)

// ReactionsSubject prefixes every reaction event subject.
const ReactionsSubject = nats.StreamName + ".reactions"

func Subject(outcome core.ReactionOutcome) string {
	return ReactionsSubject + "." + string(outcome)
}

// MessageID lets JetStream drop duplicate publishes of the same toggle.
func MessageID(event core.ReactionEvent) string {
	return fmt.Sprintf("%d-%s-%d", event.PublicationID, event.UserID, event.At.UnixNano())
}

func EncodeEvent(event core.ReactionEvent) ([]byte, error) {
	return json.Marshal(event)
}

func DecodeEvent(data []byte) (core.ReactionEvent, error) {
	var event core.ReactionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return core.ReactionEvent{}, fmt.Errorf("%w: %w", core.ErrInvalidArgument, err)
	}
	if event.PublicationID == 0 || event.UserID == uuid.Nil {
		return core.ReactionEvent{}, fmt.Errorf("%w: incomplete reaction event", core.ErrInvalidArgument)
	}
	if _, err := core.ParseReactionKind(string(event.Kind)); err != nil {
		return core.ReactionEvent{}, err
	}
	if event.Outcome.Message() == "" {
		return core.ReactionEvent{}, fmt.Errorf("%w: unknown outcome %q", core.ErrInvalidArgument, event.Outcome)
	}
	return event, nil
}

// Snapshot is the latest known counters of a publication, kept in the key-value bucket.
type Snapshot struct {
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
	Outcome  string `json:"last_outcome"`
}

func SnapshotKey(publicationID uint64) string {
	return fmt.Sprintf("publication.%d", publicationID)
}
