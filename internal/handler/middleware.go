package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/car-registry/backend/internal/model"
	"github.com/car-registry/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authUserKey     = "auth_user"
	requestIDHeader = "X-Request-ID"
	requestIDCtxKey = "request_id"
	bearerPrefix    = "Bearer "
)

// CredentialLoader loads the stored credential a token subject points at.
type CredentialLoader interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, bool, error)
}

// Identity establishes the caller's identity from a bearer token. It never
// aborts: requests without a token, or with one that fails to parse or
// validate, continue anonymously and are rejected later by RequireRole
// where the route demands a role.
func Identity(tokens *service.TokenService, users CredentialLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" || GetAuthUser(c) != nil {
			c.Next()
			return
		}

		subject, err := tokens.ExtractSubject(token)
		if err != nil {
			c.Next()
			return
		}

		user, found, err := users.GetUserByEmail(c.Request.Context(), subject)
		if err != nil || !found {
			c.Next()
			return
		}

		if tokens.Validate(token, user.Email) {
			c.Set(authUserKey, &model.AuthUser{Email: user.Email, Role: user.Role})
		}
		c.Next()
	}
}

// RequireRole gates a route on the request-scoped identity: 401 when none
// was established, 403 when the role is not in the allowed set.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		c.Abort()
	}
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

// RequestID tags every request and response with a correlation id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDCtxKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
