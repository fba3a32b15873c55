package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill Model
type Bill struct {
	ID               uint            `gorm:"primaryKey" json:"id"`                           // Primary key
	BillNumber       string          `gorm:"size:64;uniqueIndex;not null" json:"bill_number"` // BILL-YYYYMMDD-NNNN, globally unique
	ElectionType     ElectionType    `gorm:"size:32;not null" json:"election_type"`          // by-election or project-election
	ElectionName     string          `gorm:"size:256;not null" json:"election_name"`         // Name of the election
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`      // Due amount in baht
	DueDate          time.Time       `gorm:"type:date;not null" json:"due_date"`             // Payment due date
	Description      string          `gorm:"type:text" json:"description"`                   // Free-text description
	RecipientName    string          `gorm:"size:128;not null" json:"recipient_name"`        // Recipient display name
	RecipientAddress string          `gorm:"type:text;not null" json:"recipient_address"`    // Postal address
	RecipientEmail   *string         `gorm:"size:128" json:"recipient_email,omitempty"`      // Email for method "email"
	RecipientPhone   *string         `gorm:"size:20" json:"recipient_phone,omitempty"`       // Phone for method "sms"
	Status           DocumentStatus  `gorm:"size:16;default:created" json:"status"`          // Lifecycle status
	CreatedBy        uint            `gorm:"not null;index" json:"created_by"`               // Creating user
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Documents  []Document `gorm:"foreignKey:BillID" json:"-"` // Generated documents for this bill
	Deliveries []Delivery `gorm:"foreignKey:BillID" json:"-"` // Dispatch attempts for this bill
}

func (Bill) TableName() string { return "bills" }
