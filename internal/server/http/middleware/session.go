package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/server/http/dto"
)

const (
	// SessionContextKey is a gin context key for the resolved ordering session.
	SessionContextKey = "session"
	// SessionHeader carries the session token issued on QR scan.
	SessionHeader = "X-Session-ID"
)

// SessionResolver turns a session token into an active session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*model.Session, error)
}

// SessionRequired ensures the request carries an active table session.
func SessionRequired(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(SessionHeader))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("session id is required"))
			return
		}

		session, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrSessionInvalid) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("session invalid or expired"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Failure("internal server error"))
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}
