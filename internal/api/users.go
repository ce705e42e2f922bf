package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"miniblog/internal/accounts"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type deleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	user, err := s.Accounts.Register(c.Request.Context(), accounts.Registration{
		Name:     req.Name,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserView(user))
}

func (s *Server) getUser(c *gin.Context) {
	nickname := c.Query("nickname")
	if nickname == "" {
		s.abort(c, invalidRequest(errors.New("nickname is required")))
		return
	}

	user, err := s.Accounts.Get(c.Request.Context(), nickname)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserView(user))
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	session, err := s.Accounts.Login(c.Request.Context(), req.Nickname, req.Password)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionView(session))
}

func (s *Server) logout(c *gin.Context) {
	if err := s.Accounts.Logout(c.Request.Context(), currentClaims(c)); err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Logged out."})
}

func (s *Server) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	user, err := s.Accounts.Update(c.Request.Context(), currentUser(c), accounts.Changes{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserView(user))
}

func (s *Server) deleteUser(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, invalidRequest(err))
		return
	}

	if err := s.Accounts.Delete(c.Request.Context(), currentClaims(c), req.Password); err != nil {
		s.abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
