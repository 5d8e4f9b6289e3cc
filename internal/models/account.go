package models

import (
	"time"
)

// Job is a named piece of work owned by one user with its own hourly rate.
type Job struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      uint    `gorm:"not null;index" json:"user_id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`
	HourlyRate  float64 `gorm:"not null;default:18" json:"hourly_rate"`

	// Relationships
	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// User is a registered account.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Username     string `gorm:"uniqueIndex;size:120;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:320;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`
}

// AdminClaim holds the single row that marks which user was bootstrapped as
// administrator. Slot is always AdminSlot, so a second insert conflicts.
type AdminClaim struct {
	Slot      uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"not null"`
	CreatedAt time.Time
}

// AdminSlot is the only primary key value AdminClaim ever uses.
const AdminSlot = 1
