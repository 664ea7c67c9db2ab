package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neupane-rajan/airline-reservation/internal/auth"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"github.com/neupane-rajan/airline-reservation/internal/service/booking"
	"go.uber.org/zap"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "user_role"
)

// Authenticate resolves the bearer token to (user id, role) and stores
// both in the request context for the handlers behind it.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireStaff gates endpoints open to staff and admins.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsStaff(roleFrom(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates flight management and dashboards.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAdmin(roleFrom(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// RequestLogger logs every request with latency and status.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func actorFrom(c *gin.Context) booking.Actor {
	return booking.Actor{UserID: userIDFrom(c), Role: roleFrom(c)}
}

func userIDFrom(c *gin.Context) int64 {
	id, _ := c.Get(ctxUserID)
	userID, _ := id.(int64)
	return userID
}

func roleFrom(c *gin.Context) domain.UserRole {
	r, _ := c.Get(ctxRole)
	role, _ := r.(domain.UserRole)
	return role
}
