package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"miniblog/internal/core"
	"miniblog/internal/publishing"
)

type createPublicationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

type updatePublicationRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tag         *string `json:"tag"`
}

type latestQuery struct {
	Limit int `form:"limit" binding:"min=0"`
}

type tagQuery struct {
	Tag string `form:"tag" binding:"required"`
}

type daysQuery struct {
	Days       *int   `form:"days" binding:"required,min=0"`
	DateOfPost string `form:"date_of_post"`
}

func publicationID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, invalidRequest(fmt.Errorf("malformed publication id %q", c.Param("id")))
	}
	return id, nil
}

func (s *Server) latestPublications(c *gin.Context) {
	var query latestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	publications, err := s.Publishing.Latest(c.Request.Context(), currentUser(c), query.Limit)
	s.respondList(c, publications, err)
}

func (s *Server) myPublications(c *gin.Context) {
	publications, err := s.Publishing.Mine(c.Request.Context(), currentUser(c))
	s.respondList(c, publications, err)
}

func (s *Server) publicationsByTag(c *gin.Context) {
	var query tagQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	publications, err := s.Publishing.ByTag(c.Request.Context(), currentUser(c), query.Tag)
	s.respondList(c, publications, err)
}

func (s *Server) publicationsByDays(c *gin.Context) {
	var query daysQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	publications, err := s.Publishing.ByDays(c.Request.Context(), currentUser(c),
		*query.Days, publishing.DaysMode(query.DateOfPost))
	s.respondList(c, publications, err)
}

func (s *Server) getPublication(c *gin.Context) {
	id, err := publicationID(c)
	if err != nil {
		s.abort(c, err)
		return
	}

	publication, err := s.Publishing.Get(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, newPublicationView(publication, false))
}

func (s *Server) createPublication(c *gin.Context) {
	var req createPublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	publication, err := s.Publishing.Add(c.Request.Context(), currentUser(c), publishing.Draft{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, newPublicationView(publication, false))
}

func (s *Server) updatePublication(c *gin.Context) {
	id, err := publicationID(c)
	if err != nil {
		s.abort(c, err)
		return
	}

	var req updatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	publication, err := s.Publishing.Update(c.Request.Context(), id, currentUser(c), publishing.Changes{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, newPublicationView(publication, false))
}

func (s *Server) deletePublication(c *gin.Context) {
	id, err := publicationID(c)
	if err != nil {
		s.abort(c, err)
		return
	}

	if err := s.Publishing.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		s.abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) respondList(c *gin.Context, publications []core.Publication, err error) {
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, newPublicationViews(publications))
}
