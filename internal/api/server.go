package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"miniblog/internal/accounts"
	"miniblog/internal/auth"
	"miniblog/internal/blocking"
	"miniblog/internal/config"
	"miniblog/internal/publishing"
	"miniblog/internal/reacting"
)

const shutdownTimeout = 10 * time.Second

// Server serves the public JSON API.
type Server struct {
	Logger *slog.Logger
	Config *config.Config

	Accounts      *accounts.Service
	Publishing    *publishing.Service
	Reacting      *reacting.Service
	Blocking      *blocking.Service
	Authenticator *auth.Authenticator

	server *http.Server
}

func (s *Server) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "api.Server")

	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		Addr:              s.Config.ListenAddr,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("Starting API server", "addr", s.server.Addr)

	go func() {
		<-ctx.Done()

		// Run's ctx is already canceled here.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.server.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler builds the router, it is also used directly by tests.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(
		s.logRequests(),
		s.recoverPanics(),
	)

	users := r.Group("/users")
	users.POST("", s.register)
	users.GET("", s.getUser)
	users.POST("/login", s.login)
	users.POST("/logout", s.requireAuth(), s.logout)
	users.PATCH("", s.requireAuth(), s.updateUser)
	users.DELETE("", s.requireAuth(), s.deleteUser)

	publications := r.Group("/publications")
	publications.GET("/latest", s.optionalAuth(), s.latestPublications)
	publications.GET("/me", s.requireAuth(), s.myPublications)
	publications.GET("/tag", s.optionalAuth(), s.publicationsByTag)
	publications.GET("/days", s.optionalAuth(), s.publicationsByDays)
	publications.GET("/liked", s.requireAuth(), s.likedPublications)
	publications.GET("/disliked", s.requireAuth(), s.dislikedPublications)
	publications.GET("/:id", s.getPublication)
	publications.POST("", s.requireAuth(), s.createPublication)
	publications.PATCH("/:id", s.requireAuth(), s.updatePublication)
	publications.DELETE("/:id", s.requireAuth(), s.deletePublication)
	publications.POST("/:id/like", s.requireAuth(), s.likePublication)
	publications.POST("/:id/dislike", s.requireAuth(), s.dislikePublication)

	blocks := r.Group("/blocks", s.requireAuth())
	blocks.POST("/tags", s.toggleBlockedTag)
	blocks.GET("/tags", s.blockedTags)

	return r
}
