package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/timesheet"
)

// SessionStatus is the state of one job scope for today.
type SessionStatus struct {
	ClockedIn bool
	Date      string
	JobID     *uint
	// Record is the latest record for the scope today, open or closed; nil if none.
	Record *models.ClockRecord
}

// inScope restricts a clock_records query to one user and job scope. A nil
// jobID selects only unscoped sessions.
func inScope(tx *gorm.DB, userID uint, jobID *uint) *gorm.DB {
	q := tx.Model(&models.ClockRecord{}).Where("user_id = ?", userID)
	if jobID != nil {
		return q.Where("job_id = ?", *jobID)
	}
	return q.Where("job_id IS NULL")
}

// ClockIn opens a session for today in the given job scope. The job, if any,
// must belong to the user. Open sessions from earlier days do not block.
func (s *Store) ClockIn(ctx context.Context, userID uint, jobID *uint) (*models.ClockRecord, error) {
	now := s.Now()
	today := timesheet.DateOf(now)

	var rec models.ClockRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if jobID != nil {
			if _, err := findOwnedJob(tx, userID, *jobID); err != nil {
				if errors.Is(err, ErrJobNotFound) {
					return ErrInvalidJob
				}
				return err
			}
		}

		// Check if there's already an open session in this scope
		var open models.ClockRecord
		err := inScope(tx, userID, jobID).
			Where("date = ? AND clock_out IS NULL", today).
			Take(&open).Error
		if err == nil {
			return ErrAlreadyOpen
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rec = models.ClockRecord{
			UserID:  userID,
			JobID:   jobID,
			JobKey:  models.ScopeKey(jobID),
			Date:    today,
			ClockIn: now,
		}
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			// A concurrent clock-in won the race for the open-session index.
			if isUniqueViolation(err) {
				return ErrAlreadyOpen
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ClockOut closes the most recent open session for today in the given job scope.
// The clock-out time is not checked against the clock-in time.
func (s *Store) ClockOut(ctx context.Context, userID uint, jobID *uint) (*models.ClockRecord, error) {
	now := s.Now()
	today := timesheet.DateOf(now)

	var rec models.ClockRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := inScope(tx, userID, jobID).
			Where("date = ? AND clock_out IS NULL", today).
			Order("id DESC").
			Take(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotOpen
		}
		if err != nil {
			return err
		}

		res := tx.Model(&models.ClockRecord{}).
			Where("id = ? AND clock_out IS NULL", rec.ID).
			Update("clock_out", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotOpen
		}
		rec.ClockOut = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Status reports whether the user has an open session today in the given job scope.
func (s *Store) Status(ctx context.Context, userID uint, jobID *uint) (*SessionStatus, error) {
	today := timesheet.DateOf(s.Now())
	st := &SessionStatus{Date: today, JobID: jobID}

	var rec models.ClockRecord
	err := inScope(s.db.WithContext(ctx), userID, jobID).
		Where("date = ?", today).
		Preload("Job").
		Order("id DESC").
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return st, nil
	}
	if err != nil {
		return nil, err
	}

	st.Record = &rec
	st.ClockedIn = rec.IsOpen()
	st.Date = rec.Date
	st.JobID = rec.JobID
	return st, nil
}

// OpenSessions returns every session the user has open today, across all job scopes.
func (s *Store) OpenSessions(ctx context.Context, userID uint) ([]models.ClockRecord, error) {
	var recs []models.ClockRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND clock_out IS NULL", userID, timesheet.DateOf(s.Now())).
		Preload("Job").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
