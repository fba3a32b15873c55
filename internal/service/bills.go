package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"election_billing/internal/domain"
	"election_billing/internal/mailer"
	"election_billing/internal/pdf"
	"election_billing/internal/sequence"
	"election_billing/internal/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BillService owns the bill lifecycle: creation with its invoice document,
// dispatch to the recipient, and delivery-status lookup.
type BillService struct {
	db       *gorm.DB
	renderer pdf.Renderer
	mail     mailer.Mailer
	tracker  tracking.API
	docDir   string
}

// NewBillService creates a BillService
func NewBillService(db *gorm.DB, renderer pdf.Renderer, mail mailer.Mailer, tracker tracking.API, docDir string) *BillService {
	return &BillService{db: db, renderer: renderer, mail: mail, tracker: tracker, docDir: docDir}
}

// CreateBillInput carries the validated request fields for a new bill
type CreateBillInput struct {
	ElectionType     string
	ElectionName     string
	Amount           decimal.Decimal
	DueDate          time.Time
	Description      string
	RecipientName    string
	RecipientAddress string
	RecipientEmail   *string
	RecipientPhone   *string
}

// CreateBill persists a bill with a fresh bill number, renders its invoice
// PDF and persists the linked document record. Bill and document are one
// atomic unit: a rendering or storage failure leaves no half-created bill
// behind.
func (s *BillService) CreateBill(ctx context.Context, input CreateBillInput, creator *domain.User) (*domain.Bill, error) {
	electionType, err := domain.ParseElectionType(input.ElectionType)
	if err != nil {
		return nil, E(KindValidation, "ประเภทการเลือกตั้งไม่ถูกต้อง", err)
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, E(KindValidation, "จำนวนเงินต้องมากกว่าศูนย์", nil)
	}

	var bill domain.Bill
	var filePath string
	err = sequence.WithRetry(func() error {
		filePath = ""
		return s.db.Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			billNumber, err := sequence.Next(tx, "bills", "bill_number", sequence.BillPrefix, now)
			if err != nil {
				return err
			}
			bill = domain.Bill{
				BillNumber:       billNumber,
				ElectionType:     electionType,
				ElectionName:     input.ElectionName,
				Amount:           input.Amount,
				DueDate:          input.DueDate,
				Description:      input.Description,
				RecipientName:    input.RecipientName,
				RecipientAddress: input.RecipientAddress,
				RecipientEmail:   input.RecipientEmail,
				RecipientPhone:   input.RecipientPhone,
				Status:           domain.StatusCreated,
				CreatedBy:        creator.ID,
			}
			if err := tx.Create(&bill).Error; err != nil {
				return err
			}

			// Invoice artifact
			html, err := pdf.InvoiceHTML(&bill)
			if err != nil {
				return err
			}
			data, err := s.renderer.Render(ctx, html)
			if err != nil {
				return E(KindExternal, "ไม่สามารถสร้างเอกสาร PDF ได้", err)
			}
			path, err := s.storeDocument(data)
			if err != nil {
				return err
			}
			filePath = path

			docNumber, err := sequence.Next(tx, "documents", "document_number", sequence.DocumentPrefix, now)
			if err != nil {
				return err
			}
			document := domain.Document{
				DocumentNumber: docNumber,
				DocumentType:   domain.DocumentTypeInvoice,
				Title:          "ใบเรียกเก็บเงิน - " + bill.ElectionName,
				FilePath:       path,
				FileSize:       int64(len(data)),
				MimeType:       "application/pdf",
				Status:         domain.StatusCreated,
				BillID:         &bill.ID,
				CreatedBy:      creator.ID,
			}
			return tx.Create(&document).Error
		})
	})
	if err != nil {
		// The artifact outlives the transaction; discard it on rollback
		if filePath != "" {
			_ = os.Remove(filePath)
		}
		logrus.WithFields(logrus.Fields{
			"creator_id": creator.ID,
			"error":      err.Error(),
		}).Error("Create bill failed")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"bill_number": bill.BillNumber,
		"creator_id":  creator.ID,
		"amount":      bill.Amount.StringFixed(2),
	}).Info("Bill created")
	return &bill, nil
}

// storeDocument writes artifact bytes under the document directory with a
// collision-free name.
func (s *BillService) storeDocument(data []byte) (string, error) {
	if err := os.MkdirAll(s.docDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.docDir, uuid.NewString()+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// SendBill dispatches a bill's invoice document over the chosen method.
// Only admin, manager, or the bill's creator may send. Email dispatch and
// the delivery record are one atomic unit: a failed send leaves neither a
// delivery row nor a "sent" bill behind. Non-email methods record the
// delivery for manual handling and do not touch the bill.
func (s *BillService) SendBill(ctx context.Context, billID uint, methodStr string, actor *domain.User) (string, error) {
	var bill domain.Bill
	if err := s.db.First(&bill, billID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", E(KindNotFound, "ไม่พบใบเรียกเก็บเงิน", err)
		}
		return "", err
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleManager && bill.CreatedBy != actor.ID {
		return "", E(KindAuthorization, "คุณไม่มีสิทธิ์ในการส่งใบเรียกเก็บเงินนี้", nil)
	}
	method, err := domain.ParseDeliveryMethod(methodStr)
	if err != nil {
		return "", E(KindValidation, "วิธีการส่งไม่ถูกต้อง", err)
	}

	var document domain.Document
	if err := s.db.Where("bill_id = ? AND document_type = ?", billID, domain.DocumentTypeInvoice).
		First(&document).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", E(KindNotFound, "ไม่พบเอกสารใบเรียกเก็บเงิน", err)
		}
		return "", err
	}

	contact := ""
	if method == domain.MethodEmail {
		if bill.RecipientEmail == nil || *bill.RecipientEmail == "" {
			return "", E(KindValidation, "ใบเรียกเก็บเงินไม่มีอีเมลผู้รับ", nil)
		}
		contact = *bill.RecipientEmail
	} else if bill.RecipientPhone != nil {
		contact = *bill.RecipientPhone
	}

	var trackingNumber string
	dispatched := false
	err = sequence.WithRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			number, err := sequence.Next(tx, "deliveries", "tracking_number", sequence.TrackingPrefix, now)
			if err != nil {
				return err
			}
			delivery := domain.Delivery{
				TrackingNumber:   number,
				Method:           method,
				RecipientName:    bill.RecipientName,
				RecipientContact: contact,
				Status:           domain.StatusSent, // Pre-dispatch default
				SentAt:           &now,
				BillID:           &bill.ID,
				DocumentID:       &document.ID,
			}
			if err := tx.Create(&delivery).Error; err != nil {
				return err
			}
			trackingNumber = number

			if method != domain.MethodEmail {
				return nil // No transport for sms/post/hand delivery
			}
			attachment, err := os.ReadFile(document.FilePath)
			if err != nil {
				return E(KindInternal, "ไม่พบไฟล์เอกสาร", err)
			}
			msg := &mailer.Message{
				To:      contact,
				Subject: "ใบเรียกเก็บเงิน - " + bill.ElectionName,
				Body: fmt.Sprintf(
					"เรียน %s\n\nกรุณาชำระเงินตามใบเรียกเก็บเงินที่แนบมา\n\nจำนวนเงิน: %s บาท\nกำหนดชำระ: %s\n\nขอบคุณครับ",
					bill.RecipientName, bill.Amount.StringFixed(2), bill.DueDate.Format("2006-01-02")),
				Attachment:     attachment,
				AttachmentName: bill.BillNumber + ".pdf",
			}
			if err := s.mail.Send(msg); err != nil {
				return E(KindExternal, "ไม่สามารถส่งอีเมลได้", err)
			}
			// Dispatch succeeded: bill and delivery move to "sent" together
			if err := tx.Model(&bill).Update("status", domain.StatusSent).Error; err != nil {
				return err
			}
			dispatched = true
			return nil
		})
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"bill_id":  billID,
			"actor_id": actor.ID,
			"method":   methodStr,
			"error":    err.Error(),
		}).Error("Send bill failed")
		return "", err
	}

	if dispatched {
		// Best-effort: the upstream tracker learns about the send
		if err := s.tracker.PushStatus(ctx, trackingNumber, string(domain.StatusSent)); err != nil {
			logrus.WithFields(logrus.Fields{
				"tracking_number": trackingNumber,
				"error":           err.Error(),
			}).Warn("Status push to tracker failed")
		}
	}
	logrus.WithFields(logrus.Fields{
		"bill_number":     bill.BillNumber,
		"tracking_number": trackingNumber,
		"method":          string(method),
		"actor_id":        actor.ID,
	}).Info("Bill sent")
	return trackingNumber, nil
}

// DeliveryStatusView is the read model returned for a tracking lookup
type DeliveryStatusView struct {
	TrackingNumber string     `json:"tracking_number"`
	Status         string     `json:"status"`
	Method         string     `json:"method"`
	SentAt         *time.Time `json:"sent_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	RecipientName  string     `json:"recipient_name"`
	Notes          string     `json:"notes"`
}

// DeliveryStatus looks up a delivery and refreshes it from the external
// tracker. A tracker that knows nothing leaves the record untouched, so the
// lookup is an idempotent read in that case.
func (s *BillService) DeliveryStatus(ctx context.Context, trackingNumber string) (*DeliveryStatusView, error) {
	var delivery domain.Delivery
	if err := s.db.Where("tracking_number = ?", trackingNumber).First(&delivery).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, E(KindNotFound, "ไม่พบข้อมูลการส่งมอบ", err)
		}
		return nil, err
	}

	update, err := s.tracker.CheckDeliveryStatus(ctx, trackingNumber)
	if err != nil {
		return nil, E(KindExternal, "ไม่สามารถตรวจสอบสถานะการส่งมอบได้", err)
	}
	if update != nil {
		status, err := domain.ParseDocumentStatus(update.Status)
		if err != nil {
			return nil, E(KindExternal, "สถานะจากระบบติดตามไม่ถูกต้อง", err)
		}
		delivery.Status = status
		if update.DeliveredAt != nil {
			delivery.DeliveredAt = update.DeliveredAt
		}
		if err := s.db.Save(&delivery).Error; err != nil {
			return nil, err
		}
	}

	return &DeliveryStatusView{
		TrackingNumber: delivery.TrackingNumber,
		Status:         string(delivery.Status),
		Method:         string(delivery.Method),
		SentAt:         delivery.SentAt,
		DeliveredAt:    delivery.DeliveredAt,
		RecipientName:  delivery.RecipientName,
		Notes:          delivery.Notes,
	}, nil
}

// ListBills returns the bills of one election type for the tracking view.
// Admin and manager see everything, other roles only their own bills.
func (s *BillService) ListBills(electionTypeStr string, viewer *domain.User) ([]domain.Bill, error) {
	electionType, err := domain.ParseElectionType(electionTypeStr)
	if err != nil {
		return nil, E(KindValidation, "ประเภทการเลือกตั้งไม่ถูกต้อง", err)
	}
	query := s.db.Where("election_type = ?", electionType)
	if viewer.Role != domain.RoleAdmin && viewer.Role != domain.RoleManager {
		query = query.Where("created_by = ?", viewer.ID)
	}
	var bills []domain.Bill
	if err := query.Order("created_at desc").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}
