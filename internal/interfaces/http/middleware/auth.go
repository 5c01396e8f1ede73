package middleware

import (
	"context"
	"errors"
	"strings"

	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/pkg/jwt"
	"brixium.backend/pkg/logger"
	"brixium.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader carries an opaque server-side session id
	SessionHeader = "X-Session-Id"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// SessionIDKey is the context key for the session id, when one was used
	SessionIDKey = "sessionId"
)

// SessionReader resolves session ids created at login
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// AuthMiddleware accepts either a bearer access token or a session id.
// sessions may be nil when Redis is not configured.
func AuthMiddleware(jwtService *jwt.JWTService, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sessionID := c.GetHeader(SessionHeader); sessionID != "" {
			if sessions == nil {
				response.Abort(c, domainerrors.Unauthorized("sessions are not available"))
				return
			}
			session, err := sessions.GetSession(ctx, sessionID)
			if err != nil {
				logger.Warn(ctx, "session lookup failed", zap.String("path", c.FullPath()), zap.Error(err))
				if errors.Is(err, redis.ErrSessionNotFound) {
					response.Abort(c, domainerrors.Unauthorized("session expired or unknown"))
					return
				}
				response.Abort(c, domainerrors.Unauthorized("invalid session"))
				return
			}
			c.Set(SessionIDKey, sessionID)
			setPrincipal(c, session.UserID, session.Email, session.Role)
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.Abort(c, domainerrors.Unauthorized("authorization header is required"))
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Abort(c, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>"))
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Warn(ctx, "token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Abort(c, domainerrors.TokenExpired("token has expired"))
				return
			}
			response.Abort(c, domainerrors.Unauthorized("invalid token"))
			return
		}

		setPrincipal(c, claims.UserID, claims.Email, claims.Role)
		c.Next()
	}
}

func setPrincipal(c *gin.Context, userID, email, role string) {
	c.Set(UserIDKey, userID)
	c.Set(UserEmailKey, email)
	c.Set(UserRoleKey, role)

	ctx := context.WithValue(c.Request.Context(), logger.ActorIDKey, userID)
	c.Request = c.Request.WithContext(ctx)
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email := c.GetString(UserEmailKey)
	return email, email != ""
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role := c.GetString(UserRoleKey)
	return role, role != ""
}

// GetSessionID returns the session id used to authenticate, if any
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// IsAdmin reports whether the caller authenticated as the admin
func IsAdmin(c *gin.Context) bool {
	role, _ := GetUserRole(c)
	return role == "admin"
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			response.Abort(c, domainerrors.Unauthorized("user role not found"))
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Abort(c, domainerrors.Forbidden("insufficient permissions"))
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}

// RequireCustomer keeps the admin token out of customer-only routes
func RequireCustomer() gin.HandlerFunc {
	return RequireRole("user")
}
