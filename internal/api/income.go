package api

import (
	"net/http"
	"net/url"
	"time"

	"election_billing/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MyIncomeHandler returns the authenticated user's income records
func MyIncomeHandler(income *service.IncomeService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		records, err := income.ListIncome(user.ID, nil, nil)
		if err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"income_records": records,
			"user": gin.H{
				"name":      user.Name,
				"authority": user.Authority,
				"team":      user.Team,
			},
		})
	}
}

// IncomeReportHandler streams the user's income report as a PDF download.
// Both start_date and end_date must be given to bound the period; otherwise
// every record is included.
func IncomeReportHandler(income *service.IncomeService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		var start, end *time.Time
		if startStr, endStr := c.Query("start_date"), c.Query("end_date"); startStr != "" && endStr != "" {
			startDate, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "รูปแบบวันที่ไม่ถูกต้อง"})
				return
			}
			endDate, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "รูปแบบวันที่ไม่ถูกต้อง"})
				return
			}
			start, end = &startDate, &endDate
		}

		records, err := income.ListIncome(user.ID, start, end)
		if err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในการสร้างรายงาน")
			return
		}
		data, filename, err := income.GenerateIncomeReport(c.Request.Context(), user, records)
		if err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในการสร้างรายงาน")
			return
		}
		// RFC 5987 encoding keeps the Thai file name intact
		c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		c.Data(http.StatusOK, "application/pdf", data)
	}
}
