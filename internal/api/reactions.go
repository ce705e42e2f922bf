package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"miniblog/internal/core"
)

type reactionResponse struct {
	Detail      string               `json:"detail"`
	Outcome     core.ReactionOutcome `json:"outcome"`
	Publication publicationView      `json:"publication"`
}

type toggleFunc func(ctx context.Context, publicationID uint64, userID uuid.UUID) (core.ReactionResult, error)

func (s *Server) likePublication(c *gin.Context) {
	s.toggleReaction(c, s.Reacting.Like)
}

func (s *Server) dislikePublication(c *gin.Context) {
	s.toggleReaction(c, s.Reacting.Dislike)
}

func (s *Server) toggleReaction(c *gin.Context, toggle toggleFunc) {
	id, err := publicationID(c)
	if err != nil {
		s.abort(c, err)
		return
	}

	result, err := toggle(c.Request.Context(), id, currentUser(c))
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, reactionResponse{
		Detail:      result.Outcome.Message(),
		Outcome:     result.Outcome,
		Publication: newPublicationView(result.Publication, true),
	})
}

func (s *Server) likedPublications(c *gin.Context) {
	s.reactedPublications(c, core.ReactionLike)
}

func (s *Server) dislikedPublications(c *gin.Context) {
	s.reactedPublications(c, core.ReactionDislike)
}

// reactedPublications answers 404 for an empty list, the service itself returns it empty.
func (s *Server) reactedPublications(c *gin.Context, kind core.ReactionKind) {
	publications, err := s.Reacting.ListReacted(c.Request.Context(), currentUser(c), kind)
	if err != nil {
		s.abort(c, err)
		return
	}
	if len(publications) == 0 {
		s.abort(c, fmt.Errorf("%w: you haven't %sd any publication yet", core.ErrNotFound, kind))
		return
	}

	c.JSON(http.StatusOK, newPublicationViews(publications))
}
