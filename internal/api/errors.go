package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"miniblog/internal/core"
)

var statuses = []struct {
	err    error
	status int
}{
	{core.ErrNotFound, http.StatusNotFound},
	{core.ErrInvalidArgument, http.StatusUnprocessableEntity},
	{core.ErrUnauthenticated, http.StatusUnauthorized},
	{core.ErrUnauthorized, http.StatusForbidden},
	{core.ErrConflict, http.StatusConflict},
}

func statusOf(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// abort writes err as a JSON error, internal errors are logged and hidden from the client.
func (s *Server) abort(c *gin.Context, err error) {
	status := statusOf(err)

	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(status, gin.H{"detail": "Internal Server Error"})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}

func invalidRequest(err error) error {
	return fmt.Errorf("%w: %w", core.ErrInvalidArgument, err)
}
