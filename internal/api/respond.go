package api

import (
	"fmt"
	"net/http"

	"election_billing/internal/domain"
	"election_billing/internal/middleware"
	"election_billing/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// statusFor maps a service failure kind to an HTTP status code
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindAuthorization:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindDuplicate:
		return http.StatusConflict
	case service.KindExternal:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes the uniform failure shape for a service error
func respondError(c *gin.Context, err error, fallback string) {
	c.JSON(statusFor(service.KindOf(err)), gin.H{
		"status":  "error",
		"message": service.MessageOf(err, fallback),
	})
}

// messageCreatedCount is the bulk-create success message
func messageCreatedCount(created int) string {
	return fmt.Sprintf("สร้างผู้ใช้สำเร็จ %d คน", created)
}

// messageImportedCount is the sheet-import success message
func messageImportedCount(created int) string {
	return fmt.Sprintf("นำเข้าผู้ใช้สำเร็จ %d คน", created)
}

// currentUser loads the authenticated user set by the session middleware
func currentUser(c *gin.Context, db *gorm.DB) (*domain.User, bool) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "กรุณาเข้าสู่ระบบ"})
		return nil, false
	}
	var user domain.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "กรุณาเข้าสู่ระบบ"})
		return nil, false
	}
	return &user, true
}
