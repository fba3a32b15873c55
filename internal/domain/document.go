package domain

import "time"

// Document types
const (
	DocumentTypeInvoice = "invoice"
	DocumentTypeReceipt = "receipt"
	DocumentTypeReport  = "report"
)

// Document Model
type Document struct {
	ID             uint           `gorm:"primaryKey" json:"id"`                                // Primary key
	DocumentNumber string         `gorm:"size:64;uniqueIndex;not null" json:"document_number"` // DOC-YYYYMMDD-NNNN, globally unique
	DocumentType   string         `gorm:"size:64;not null" json:"document_type"`               // invoice, receipt or report
	Title          string         `gorm:"size:256;not null" json:"title"`                      // Human-readable title
	FilePath       string         `gorm:"size:512" json:"file_path"`                           // Path of the stored artifact
	FileSize       int64          `json:"file_size"`                                           // Size in bytes, recorded not validated
	MimeType       string         `gorm:"size:128" json:"mime_type"`                           // Mime type, recorded not validated
	Status         DocumentStatus `gorm:"size:16;default:created" json:"status"`               // Lifecycle status
	BillID         *uint          `gorm:"index" json:"bill_id,omitempty"`                      // Parent bill, optional
	CreatedBy      uint           `gorm:"not null" json:"created_by"`                          // Creating user
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Deliveries []Delivery `gorm:"foreignKey:DocumentID" json:"-"` // Dispatch attempts carrying this document
}

func (Document) TableName() string { return "documents" }
