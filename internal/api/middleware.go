package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"miniblog/internal/auth"
)

const claimsKey = "claims"

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "miniblog_http_request_duration_seconds",
	Help:    "Histogram of API request latency in seconds.",
	Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
}, []string{"method", "route", "status_code"})

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
			Observe(duration.Seconds())

		s.Logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", duration,
		)
	}
}

func (s *Server) recoverPanics() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		s.Logger.Error("panic recovered", "error", err, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	})
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.Authenticator.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			s.abort(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// optionalAuth lets anonymous requests through but rejects a bad token.
func (s *Server) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		s.requireAuth()(c)
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	claims, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	return claims.(*auth.Claims)
}

// currentUser returns uuid.Nil for anonymous requests.
func currentUser(c *gin.Context) uuid.UUID {
	claims := currentClaims(c)
	if claims == nil {
		return uuid.Nil
	}

	id, err := claims.UserID()
	if err != nil {
		return uuid.Nil
	}
	return id
}
