package models

import (
	"time"
)

// ClockRecord is one clock-in/clock-out pair. ClockOut stays nil while the session is open.
type ClockRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	JobID  *uint `gorm:"index" json:"job_id"`
	// JobKey mirrors JobID with 0 for unscoped sessions so the open-session
	// unique index can treat "no job" as a single scope.
	JobKey   uint       `gorm:"not null;default:0" json:"-"`
	Date     string     `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD, server local
	ClockIn  time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`

	// Relationships
	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Job  *Job `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"job,omitempty"`
}

// IsOpen reports whether the session has not been clocked out yet.
func (r ClockRecord) IsOpen() bool {
	return r.ClockOut == nil
}

// ScopeKey returns the job-scope key for a nullable job id.
func ScopeKey(jobID *uint) uint {
	if jobID == nil {
		return 0
	}
	return *jobID
}
