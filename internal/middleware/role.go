package middleware

import (
	"net/http"

	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"

	"github.com/gin-gonic/gin"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists {
			forbidden(c, "Role not found in context")
			return
		}

		userRole, _ := role.(string)
		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		forbidden(c, "Insufficient permissions")
	}
}

func forbidden(c *gin.Context, message string) {
	utils.AppErrorResponse(c, http.StatusForbidden,
		appErrors.NewAppError(appErrors.CodeForbidden, message, appErrors.ErrInsufficientPermissions))
	c.Abort()
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(utils.RoleAdmin)
}

// AnyRole admits every authenticated role
func AnyRole() gin.HandlerFunc {
	return RoleMiddleware(utils.RoleAdmin, utils.RoleUser)
}
