package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IndexHandler routes the single-page entry point by its page query
// parameter. The HTML shell is served by the frontend; this endpoint tells
// it which view to mount.
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.DefaultQuery("page", "login") {
		case "login":
			c.JSON(http.StatusOK, gin.H{"page": "login"})
		case "index":
			c.Redirect(http.StatusFound, "/main")
		case "bill-tracking-by-election-type":
			c.Redirect(http.StatusFound, "/bill-tracking")
		case "my-income":
			c.Redirect(http.StatusFound, "/my-income")
		default:
			c.Redirect(http.StatusFound, "/")
		}
	}
}

// userView is the view-model shape shared by the main menu and profile
func userView(c *gin.Context, db *gorm.DB, page string) {
	user, ok := currentUser(c, db)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page": page,
		"user": gin.H{
			"username":  user.Username,
			"name":      user.Name,
			"role":      string(user.Role),
			"authority": user.Authority,
			"team":      user.Team,
			"email":     user.Email,
			"phone":     user.Phone,
		},
	})
}

// MainMenuHandler returns the main-menu view model
func MainMenuHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) { userView(c, db, "index") }
}

// ProfileHandler returns the profile view model
func ProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) { userView(c, db, "profile") }
}

// NotFoundHandler is the dedicated 404 view
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "ไม่พบหน้าที่ต้องการ",
		})
	}
}

// RecoveryHandler is the dedicated 500 view for recovered panics
func RecoveryHandler(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง",
	})
}
