package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Opposite returns the other polarity.
func (k ReactionKind) Opposite() ReactionKind {
	if k == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

func ParseReactionKind(s string) (ReactionKind, error) {
	switch ReactionKind(s) {
	case ReactionLike, ReactionDislike:
		return ReactionKind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown reaction %q", ErrInvalidArgument, s)
	}
}

// ReactionOutcome names the transition a toggle performed.
type ReactionOutcome string

const (
	OutcomeLikeAdded            ReactionOutcome = "like_added"
	OutcomeLikeRemoved          ReactionOutcome = "like_removed"
	OutcomeChangedDislikeToLike ReactionOutcome = "changed_dislike_to_like"
	OutcomeDislikeAdded         ReactionOutcome = "dislike_added"
	OutcomeDislikeRemoved       ReactionOutcome = "dislike_removed"
	OutcomeChangedLikeToDislike ReactionOutcome = "changed_like_to_dislike"
)

var outcomeMessages = map[ReactionOutcome]string{
	OutcomeLikeAdded:            "Like added to the publication.",
	OutcomeLikeRemoved:          "Like removed from the publication.",
	OutcomeChangedDislikeToLike: "Your dislike was changed to a like.",
	OutcomeDislikeAdded:         "Dislike added to the publication.",
	OutcomeDislikeRemoved:       "Dislike removed from the publication.",
	OutcomeChangedLikeToDislike: "Your like was changed to a dislike.",
}

func (o ReactionOutcome) Message() string {
	return outcomeMessages[o]
}

// ReactionResult is returned by a committed like or dislike toggle.
type ReactionResult struct {
	Outcome     ReactionOutcome
	Publication Publication
}

// BlockResult is returned by a committed tag-block toggle.
type BlockResult struct {
	Tag     Tag
	Blocked bool
}

func (r BlockResult) Message() string {
	if r.Blocked {
		return fmt.Sprintf("The %s tag is now blocked. If you want to unblock, just select the tag and send the request again! :)", r.Tag)
	}
	return fmt.Sprintf("The %s tag is now unblocked and you will see publications with this tag now.", r.Tag)
}

// ReactionEvent is published to the activity stream after a toggle commits.
type ReactionEvent struct {
	PublicationID uint64          `json:"publication_id"`
	UserID        uuid.UUID       `json:"user_id"`
	Kind          ReactionKind    `json:"kind"`
	Outcome       ReactionOutcome `json:"outcome"`
	Likes         int64           `json:"likes"`
	Dislikes      int64           `json:"dislikes"`
	At            time.Time       `json:"at"`
}
