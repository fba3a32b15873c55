package api

import (
	"net/http" // HTTP status codes

	"election_billing/internal/service"

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListUsersHandler returns every account for the admin view, newest first
func ListUsersHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.ListUsers()
		if err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง")
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": list})
	}
}

// CreateUserRequest is one user to provision
type CreateUserRequest struct {
	Username     string  `json:"username" binding:"required"`
	Password     string  `json:"password"`
	Name         string  `json:"name" binding:"required"`
	Role         string  `json:"role"`
	Authority    string  `json:"authority"`
	Team         string  `json:"team"`
	SupervisorID *string `json:"supervisor_id"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
}

func (r CreateUserRequest) toInput() service.CreateUserInput {
	return service.CreateUserInput{
		Username:     r.Username,
		Password:     r.Password,
		Name:         r.Name,
		Role:         r.Role,
		Authority:    r.Authority,
		Team:         r.Team,
		SupervisorID: r.SupervisorID,
		Email:        r.Email,
		Phone:        r.Phone,
	}
}

// CreateUserHandler provisions a single user
func CreateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "ข้อมูลผู้ใช้ไม่ถูกต้อง",
			})
			return
		}
		user, err := users.CreateUser(req.toInput())
		if err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในการสร้างผู้ใช้")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "สร้างผู้ใช้สำเร็จ",
			"user_id": user.ID,
		})
	}
}

// BulkCreateUsersRequest is the batch provisioning body
type BulkCreateUsersRequest struct {
	Users []CreateUserRequest `json:"users" binding:"required,dive"`
}

// BulkCreateUsersHandler provisions a batch with collect-and-continue
// semantics; one bad row never aborts the rest.
func BulkCreateUsersHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkCreateUsersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "ข้อมูลผู้ใช้ไม่ถูกต้อง",
			})
			return
		}
		entries := make([]service.CreateUserInput, len(req.Users))
		for i, u := range req.Users {
			entries[i] = u.toInput()
		}
		created, errs := users.BulkCreateUsers(entries)
		c.JSON(http.StatusOK, gin.H{
			"status":        "success",
			"message":       messageCreatedCount(created),
			"created_count": created,
			"errors":        errs,
		})
	}
}

// SheetImportRequest names the spreadsheet to import
type SheetImportRequest struct {
	SheetsURL string `json:"sheets_url" binding:"required"`
}

// SheetImportHandler imports users from a Google Sheets CSV export
func SheetImportHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SheetImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "กรุณาระบุ URL ของ Google Sheets",
			})
			return
		}
		created, errs, err := users.ImportFromSheet(c.Request.Context(), req.SheetsURL)
		if err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในการนำเข้าข้อมูล")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":        "success",
			"message":       messageImportedCount(created),
			"created_count": created,
			"errors":        errs,
		})
	}
}
