package rest

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
	"github.com/Shikhar-srivastav/task-manager/internal/server/models"
)

const (
	ctxUserKey  = "authUser"
	ctxTokenKey = "authToken"
)

// authMiddleware resolves the bearer token to a live session and aborts
// with 401 otherwise. Handlers behind it can rely on currentUser.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortError(c, common.ErrUnauthorized)
			return
		}

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortError(c, common.ErrUnauthorized)
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxUserKey).(*models.User)
}

func currentToken(c *gin.Context) string {
	return c.MustGet(ctxTokenKey).(string)
}
