package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/infrastructure/auth"
	"github.com/bizcompare/bizcompare/internal/shared/constants"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

// SubscriberProvider resolves the subscriber record for a verified
// identity, creating it on first contact.
type SubscriberProvider interface {
	Execute(ctx context.Context, authID, email, name string) (*subscriber.Subscriber, error)
}

type AuthMiddleware struct {
	jwtService *auth.JWTService
	provider   SubscriberProvider
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, provider SubscriberProvider, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		provider:   provider,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid bearer token and loads
// the caller's subscriber record into the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.verify(c)
		if !ok {
			return
		}

		sub, err := m.provider.Execute(c.Request.Context(), claims.AuthID, claims.Email, claims.Name)
		if err != nil {
			m.logger.Errorw("failed to resolve subscriber", "auth_id", claims.AuthID, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve account")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAuthID, claims.AuthID)
		c.Set(constants.ContextKeySubscriber, sub)
		c.Next()
	}
}

// OptionalAuth loads the subscriber when a valid token is present and
// lets anonymous requests through untouched. Directory reads use this:
// the entitlement layer treats a missing subscriber as the free tier.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Debugw("ignoring invalid token on public route", "error", err)
			c.Next()
			return
		}

		sub, err := m.provider.Execute(c.Request.Context(), claims.AuthID, claims.Email, claims.Name)
		if err != nil {
			m.logger.Warnw("failed to resolve subscriber on public route", "auth_id", claims.AuthID, "error", err)
			c.Next()
			return
		}

		c.Set(constants.ContextKeyAuthID, claims.AuthID)
		c.Set(constants.ContextKeySubscriber, sub)
		c.Next()
	}
}

// RequireAdmin gates the ingest endpoints.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.verify(c)
		if !ok {
			return
		}
		if !claims.Admin {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAuthID, claims.AuthID)
		c.Next()
	}
}

func (m *AuthMiddleware) verify(c *gin.Context) (*auth.Claims, bool) {
	token := bearerToken(c)
	if token == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
		c.Abort()
		return nil, false
	}

	claims, err := m.jwtService.Verify(token)
	if err != nil {
		m.logger.Warnw("failed to verify token", "error", err)
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		c.Abort()
		return nil, false
	}
	return claims, true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// SubscriberFromContext returns the subscriber set by RequireAuth or
// OptionalAuth, or nil for anonymous callers.
func SubscriberFromContext(c *gin.Context) *subscriber.Subscriber {
	value, exists := c.Get(constants.ContextKeySubscriber)
	if !exists {
		return nil
	}
	sub, ok := value.(*subscriber.Subscriber)
	if !ok {
		return nil
	}
	return sub
}
