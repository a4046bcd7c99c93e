package middleware

import (
	"net/http"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// RequireAdmin allows only the admin role past
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != "admin" {
			common.ErrorResponse(c, http.StatusForbidden, "Admin role required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireEditor allows editors and admins past. Editors can author
// drafts and set preview pointers; publishing stays admin-only.
func RequireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role != "editor" && role != "admin" {
			common.ErrorResponse(c, http.StatusForbidden, "Editor role required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
