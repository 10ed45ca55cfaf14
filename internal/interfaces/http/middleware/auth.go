package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/identity"
	"github.com/sdkart/backend/internal/infrastructure/auth"
	"github.com/sdkart/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	ClaimsKey     = "auth_claims"
	UserIDKey     = "auth_user_id"
	UserRoleKey   = "auth_user_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// RequireAuth verifies the bearer token and stores the caller's identity in
// the request context
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.Verify(tokenString)
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, "Token validation failed")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token carries an invalid user ID")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole allows only callers whose role is in the given set. Must run
// after RequireAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(c.GetString(UserRoleKey))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeForbidden,
			"Insufficient permissions for this resource",
			GetRequestID(c),
		))
	}
}

// GetUserID returns the authenticated user's ID, or uuid.Nil when the
// request is unauthenticated
func GetUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetUserRole returns the authenticated user's role
func GetUserRole(c *gin.Context) identity.Role {
	return identity.Role(c.GetString(UserRoleKey))
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		code, message, GetRequestID(c),
	))
}
