package domain

import "time"

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"` // Unique login name
	PasswordHash string    `gorm:"size:256;not null" json:"-"`                   // bcrypt hash, never serialized
	Name         string    `gorm:"size:128;not null" json:"name"`                // Display name
	Role         Role      `gorm:"size:16;not null;default:viewer" json:"role"`  // Role: admin, manager, officer, staff, viewer
	Authority    string    `gorm:"size:128;not null" json:"authority"`           // Owning authority (หน่วยงาน)
	Team         string    `gorm:"size:128;not null" json:"team"`                // Team label (ทีม)
	SupervisorID *string   `gorm:"size:64" json:"supervisor_id,omitempty"`       // Supervisor staff code, optional
	Email        *string   `gorm:"size:128;uniqueIndex" json:"email,omitempty"`  // Unique when present
	Phone        *string   `gorm:"size:20" json:"phone,omitempty"`               // Contact phone, optional
	IsActive     bool      `gorm:"default:true" json:"is_active"`                // Soft-deactivation flag; users are never hard-deleted
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Bills         []Bill         `gorm:"foreignKey:CreatedBy" json:"-"` // Bills created by this user
	Documents     []Document     `gorm:"foreignKey:CreatedBy" json:"-"` // Documents created by this user
	IncomeRecords []IncomeRecord `gorm:"foreignKey:UserID" json:"-"`    // Income records owned by this user
}

func (User) TableName() string { return "users" }
