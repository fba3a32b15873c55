package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTL and date parsing

	"election_billing/internal/domain"
	"election_billing/internal/service"
	"election_billing/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/shopspring/decimal"
	"gorm.io/gorm" // GORM ORM library
)

const billListCacheTTL = 60 * time.Second

// billTrackingKey is the list cache key for one viewer and election type
func billTrackingKey(userID uint, electionType string) string {
	return "billtracking:user:" + strconv.Itoa(int(userID)) + ":type:" + electionType
}

// CreateBillRequest is the bill creation body
type CreateBillRequest struct {
	ElectionType     string          `json:"election_type" binding:"required,election_type"`
	ElectionName     string          `json:"election_name" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	DueDate          string          `json:"due_date" binding:"required,datetime=2006-01-02"`
	Description      string          `json:"description"`
	RecipientName    string          `json:"recipient_name" binding:"required"`
	RecipientAddress string          `json:"recipient_address" binding:"required"`
	RecipientEmail   *string         `json:"recipient_email" binding:"omitempty,email"`
	RecipientPhone   *string         `json:"recipient_phone"`
}

// CreateBillHandler creates a bill with its invoice document
func CreateBillHandler(bills *service.BillService, db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		var req CreateBillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "ข้อมูลใบเรียกเก็บเงินไม่ถูกต้อง",
			})
			return
		}
		dueDate, _ := time.Parse("2006-01-02", req.DueDate) // Shape enforced by binding

		bill, err := bills.CreateBill(c.Request.Context(), service.CreateBillInput{
			ElectionType:     req.ElectionType,
			ElectionName:     req.ElectionName,
			Amount:           req.Amount,
			DueDate:          dueDate,
			Description:      req.Description,
			RecipientName:    req.RecipientName,
			RecipientAddress: req.RecipientAddress,
			RecipientEmail:   req.RecipientEmail,
			RecipientPhone:   req.RecipientPhone,
		}, user)
		if err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในการสร้างใบเรียกเก็บเงิน")
			return
		}
		invalidateBillTracking(c.Request.Context(), rdb, user.ID, string(bill.ElectionType))
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "สร้างใบเรียกเก็บเงินสำเร็จ",
			"bill_id": bill.ID,
		})
	}
}

// SendBillRequest is the dispatch body
type SendBillRequest struct {
	Method string `json:"method" binding:"required"` // email, sms, post or hand_delivery
}

// SendBillHandler dispatches a bill's invoice to its recipient
func SendBillHandler(bills *service.BillService, db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		billID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "รหัสใบเรียกเก็บเงินไม่ถูกต้อง",
			})
			return
		}
		var req SendBillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "กรุณาระบุวิธีการส่ง",
			})
			return
		}
		trackingNumber, err := bills.SendBill(c.Request.Context(), uint(billID), req.Method, user)
		if err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในการส่งใบเรียกเก็บเงิน")
			return
		}
		// The send may have flipped the bill status; drop the stale list
		invalidateBillTracking(c.Request.Context(), rdb, user.ID,
			string(domain.ByElection), string(domain.ProjectElection))
		c.JSON(http.StatusOK, gin.H{
			"status":          "success",
			"message":         "ส่งใบเรียกเก็บเงินสำเร็จ",
			"tracking_number": trackingNumber,
		})
	}
}

// DeliveryStatusHandler looks up a delivery and refreshes it from the tracker
func DeliveryStatusHandler(bills *service.BillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := bills.DeliveryStatus(c.Request.Context(), c.Param("tracking_number"))
		if err != nil {
			respondError(c, err, "ไม่พบข้อมูลการส่งมอบ")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// BillTrackingHandler returns the bill-tracking view model for one election
// type. Non-privileged roles only see their own bills. Results are cached
// per viewer for a short TTL.
func BillTrackingHandler(bills *service.BillService, db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		electionType := c.DefaultQuery("type", string(domain.ByElection))

		ctx := c.Request.Context()
		cacheKey := billTrackingKey(user.ID, electionType)
		if rdb != nil {
			var cached []domain.Bill
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{
					"bills":         cached,
					"election_type": electionType,
					"cached":        true,
				})
				return
			}
		}

		list, err := bills.ListBills(electionType, user)
		if err != nil {
			respondError(c, err, "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง")
			return
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, list, billListCacheTTL)
		}
		c.JSON(http.StatusOK, gin.H{
			"bills":         list,
			"election_type": electionType,
			"cached":        false,
		})
	}
}

// invalidateBillTracking drops the viewer's cached lists after a write
func invalidateBillTracking(ctx context.Context, rdb *redis.Client, userID uint, electionTypes ...string) {
	if rdb == nil {
		return
	}
	keys := make([]string, 0, len(electionTypes))
	for _, electionType := range electionTypes {
		keys = append(keys, billTrackingKey(userID, electionType))
	}
	_ = utils.DeleteCache(ctx, rdb, keys...)
}
