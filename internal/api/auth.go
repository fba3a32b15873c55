package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Token lifetime

	"election_billing/internal/middleware"
	"election_billing/internal/service"
	"election_billing/internal/session"
	"election_billing/internal/utils"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// LoginRequest is the login body
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginHandler authenticates a user and establishes a server-side session
func LoginHandler(users *service.UserService, store session.Store, secret string, ttlSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "กรุณากรอกชื่อผู้ใช้และรหัสผ่าน",
			})
			return
		}
		user, err := users.Authenticate(strings.TrimSpace(req.Username), req.Password)
		if err != nil {
			// One message for wrong password and deactivated account alike
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": service.MessageOf(err, "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"),
			})
			return
		}

		sessionID, err := store.Create(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง",
			})
			return
		}
		token, err := utils.GenerateSessionToken(user.ID, sessionID, secret, time.Duration(ttlSeconds)*time.Second)
		if err != nil {
			_ = store.Destroy(c.Request.Context(), sessionID)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง",
			})
			return
		}
		// The browser views ride on the cookie; API clients use the token
		c.SetCookie(middleware.SessionCookie, token, ttlSeconds, "/", "", false, true)

		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("Login")
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"name":      user.Name,
			"role":      string(user.Role),
			"authority": user.Authority,
			"team":      user.Team,
			"token":     token,
			"message":   "เข้าสู่ระบบสำเร็จ",
		})
	}
}

// LogoutHandler destroys the server-side session and clears the cookie
func LogoutHandler(store session.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Best-effort: an expired or garbled token still logs out
		if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
			if claims, err := utils.ParseSessionToken(cookie, secret); err == nil {
				_ = store.Destroy(c.Request.Context(), claims.SessionID)
			}
		}
		if sessionID, exists := c.Get(middleware.ContextSessionID); exists {
			_ = store.Destroy(c.Request.Context(), sessionID.(string))
		}
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/")
	}
}

// ChangePasswordRequest is the change-password body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ChangePasswordHandler rotates the authenticated user's password
func ChangePasswordHandler(users *service.UserService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "กรุณากรอกข้อมูลให้ครบถ้วน",
			})
			return
		}
		if err := users.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในการเปลี่ยนรหัสผ่าน")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "เปลี่ยนรหัสผ่านสำเร็จ",
		})
	}
}
