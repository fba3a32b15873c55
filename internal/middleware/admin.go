package middleware

import (
	"net/http" // HTTP status codes

	"election_billing/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// AdminOnly checks the user's role from the database on each request, so a
// role change takes effect without waiting for the session to expire.
func AdminOnly(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "กรุณาเข้าสู่ระบบ",
			})
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "คุณไม่มีสิทธิ์เข้าถึงหน้านี้",
			})
			return
		}
		if user.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "คุณไม่มีสิทธิ์เข้าถึงหน้านี้",
			})
			return
		}
		c.Next()
	}
}
