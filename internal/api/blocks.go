package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miniblog/internal/core"
)

type toggleBlockedTagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

type blockResponse struct {
	Detail  string   `json:"detail"`
	Tag     core.Tag `json:"tag"`
	Blocked bool     `json:"blocked"`
}

func (s *Server) toggleBlockedTag(c *gin.Context) {
	var req toggleBlockedTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	result, err := s.Blocking.ToggleBlockedTag(c.Request.Context(), currentUser(c), req.Tag)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, blockResponse{
		Detail:  result.Message(),
		Tag:     result.Tag,
		Blocked: result.Blocked,
	})
}

func (s *Server) blockedTags(c *gin.Context) {
	tags, err := s.Blocking.BlockedTags(c.Request.Context(), currentUser(c))
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
