package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"gohoras/internal"
	"gohoras/internal/errors"
	"gohoras/models"
)

const contextUserKey = "currentUser"

// requireAuth verifies the bearer token and loads the authenticated user
// into the request context.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		writeError(c, errors.Unauthorized("missing bearer token"))
		c.Abort()
		return
	}

	userID, _, err := s.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		writeError(c, err)
		c.Abort()
		return
	}

	user, err := s.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		// a valid token for a deleted user is still unauthorized
		writeError(c, errors.Unauthorized("unknown user"))
		c.Abort()
		return
	}

	c.Set(contextUserKey, user)
	c.Next()
}

// requireAdmin gates admin-only routes; it must run after requireAuth
func (s *Server) requireAdmin(c *gin.Context) {
	if !currentUser(c).IsAdmin() {
		writeError(c, errors.Forbidden("admin access required"))
		c.Abort()
		return
	}
	c.Next()
}

// currentUser returns the user loaded by requireAuth
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(contextUserKey).(*models.User)
}

// perIPRateLimit allows maxRequests per window minutes for each client IP
func perIPRateLimit(maxRequests int, windowMinutes int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)
	every := rate.Every(time.Duration(windowMinutes) * time.Minute / time.Duration(maxRequests))

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(every, maxRequests)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many requests, please wait a moment",
			})
			return
		}
		c.Next()
	}
}

// writeError renders the JSON error contract: {"message": ...} with the
// status derived from the error code. Internal details never reach the
// client; they are logged server-side.
func writeError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		internal.DefaultLogger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal server error"
	}
	c.JSON(status, gin.H{"message": message})
}
