package middleware

import (
	"errors"
	"net/http"
	"strings"

	"datacenter-inventory/internal/config"
	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	UsernameKey = "username"
	RoleKey     = "role"

	// tokenQueryParam carries the token for websocket upgrades, where
	// browsers cannot set an Authorization header
	tokenQueryParam = "access_token"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, problem := bearerToken(c)
		if problem != "" {
			unauthorized(c, problem)
			return
		}

		claims, err := utils.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, appErrors.ErrTokenExpired) {
				unauthorized(c, "Token has expired")
				return
			}
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(UsernameKey, claims.Username)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

// bearerToken extracts the token, or describes why it could not
func bearerToken(c *gin.Context) (token, problem string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if token = c.Query(tokenQueryParam); token != "" {
			return token, ""
		}
		return "", "Authorization header required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "Invalid authorization header format"
	}
	return parts[1], ""
}

func unauthorized(c *gin.Context, message string) {
	utils.AppErrorResponse(c, http.StatusUnauthorized,
		appErrors.NewAppError(appErrors.CodeUnauthorized, message, nil))
	c.Abort()
}

// GetUsername returns the authenticated user name, or "" outside the auth group
func GetUsername(c *gin.Context) string {
	if v, exists := c.Get(UsernameKey); exists {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
