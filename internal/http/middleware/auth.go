// README: Auth middleware; resolves a Bearer session token into the caller's session.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"taxi/internal/modules/account"
	"taxi/internal/modules/session"
)

const (
	ctxSession = "session"
	ctxToken   = "session_token"
)

type SessionResolver interface {
	Get(ctx context.Context, token string) (account.Session, error)
}

// Auth rejects requests without a live session token.
func Auth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login first"})
			return
		}
		sess, err := sessions.Get(c.Request.Context(), token)
		if errors.Is(err, session.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login first"})
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Set(ctxSession, sess)
		c.Set(ctxToken, token)
		c.Next()
	}
}

// CallerSession returns the session set by Auth, or the zero session.
func CallerSession(c *gin.Context) account.Session {
	v, ok := c.Get(ctxSession)
	if !ok {
		return account.Session{}
	}
	sess, _ := v.(account.Session)
	return sess
}

func CallerToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}
