package domain

import "time"

// Delivery Model
type Delivery struct {
	ID               uint           `gorm:"primaryKey" json:"id"`                                // Primary key
	TrackingNumber   string         `gorm:"size:64;uniqueIndex;not null" json:"tracking_number"` // TRK-YYYYMMDD-NNNN, globally unique
	Method           DeliveryMethod `gorm:"size:16;not null" json:"method"`                      // email, sms, post or hand_delivery
	RecipientName    string         `gorm:"size:128;not null" json:"recipient_name"`             // Recipient display name
	RecipientContact string         `gorm:"size:256;not null" json:"recipient_contact"`          // Email or phone, selected by method
	Status           DocumentStatus `gorm:"size:16;default:sent" json:"status"`                  // Pre-dispatch default is "sent"
	SentAt           *time.Time     `json:"sent_at,omitempty"`                                   // When the dispatch happened
	DeliveredAt      *time.Time     `json:"delivered_at,omitempty"`                              // Reported by the external tracker
	Notes            string         `gorm:"type:text" json:"notes"`                              // Free-text notes
	BillID           *uint          `gorm:"index" json:"bill_id,omitempty"`                      // Parent bill, optional
	DocumentID       *uint          `gorm:"index" json:"document_id,omitempty"`                  // Attached document, optional
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Delivery) TableName() string { return "deliveries" }
