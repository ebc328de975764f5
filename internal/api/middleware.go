package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yahorse/boardo/internal/auth"
	"github.com/yahorse/boardo/internal/user"
)

// RequireStaff ensures the authenticated user holds the staff or admin role.
// The role is re-read from the database rather than trusted from the token,
// so demotions take effect without waiting for token expiry.
// It MUST be used after auth.AuthRequired middleware.
func RequireStaff(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !u.Role.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: staff access required"})
			return
		}

		// Refresh the role in context in case the token claim is stale.
		c.Set("userRole", string(u.Role))

		c.Next()
	}
}
