package domain

import "time"

// ApiLog Model. Append-only request diagnostics; never read by the
// application itself.
type ApiLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`            // Primary key
	Endpoint     string    `gorm:"size:256;not null" json:"endpoint"` // Request path
	Method       string    `gorm:"size:16;not null" json:"method"`  // HTTP method
	StatusCode   int       `json:"status_code"`                     // Response status
	ResponseTime float64   `json:"response_time"`                   // Handler time in seconds
	RequestData  string    `gorm:"type:text" json:"request_data"`   // Raw request body
	ResponseData string    `gorm:"type:text" json:"response_data"`  // Raw response body
	ErrorMessage string    `gorm:"type:text" json:"error_message"`  // First handler error, if any
	CreatedAt    time.Time `json:"created_at"`
}

func (ApiLog) TableName() string { return "api_logs" }
