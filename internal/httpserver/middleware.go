package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luzeouro/internal/domain"
)

type ctxKey string

const userCtxKey ctxKey = "user"

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// authMiddleware resolves the bearer token to a user and stores it in the
// request context. Requests without a valid token stop here with 401.
func authMiddleware(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthenticated(c)
			return
		}
		user, err := sessions.CurrentUser(c.Request.Context(), token)
		if err != nil || user == nil {
			abortUnauthenticated(c)
			return
		}
		ctx := context.WithValue(c.Request.Context(), userCtxKey, user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
		Code:    "unauthenticated",
		Message: domain.ErrUnauthenticated.Error(),
	})
}

// userID returns the signed-in user id, or "" when the route is public.
func userID(c *gin.Context) string {
	if u, ok := c.Request.Context().Value(userCtxKey).(*domain.User); ok && u != nil {
		return u.ID
	}
	return ""
}

func currentUser(c *gin.Context) *domain.User {
	u, _ := c.Request.Context().Value(userCtxKey).(*domain.User)
	return u
}
