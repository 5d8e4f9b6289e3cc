package db

import (
	"context"
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/punch/internal/models"
)

// CreateJobRequest holds the data needed to create a new job
type CreateJobRequest struct {
	Name        string
	Description *string
	// HourlyRate is nil when the caller gave none or gave something unusable;
	// the store default applies then.
	HourlyRate *float64
}

// UpdateJobRequest holds the fields to change; nil leaves a field as it is.
type UpdateJobRequest struct {
	Name        *string
	Description *string
	HourlyRate  *float64
}

// CreateJob creates a job owned by userID.
func (s *Store) CreateJob(ctx context.Context, userID uint, req CreateJobRequest) (*models.Job, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, Invalid("job name is required")
	}

	job := models.Job{
		UserID:      userID,
		Name:        name,
		Description: normalizeDescription(req.Description),
		HourlyRate:  rateOr(req.HourlyRate, s.defaultRate),
	}
	if err := s.db.WithContext(ctx).Omit("User").Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns the user's jobs, newest first.
func (s *Store) ListJobs(ctx context.Context, userID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob returns one of the user's jobs.
func (s *Store) GetJob(ctx context.Context, userID, jobID uint) (*models.Job, error) {
	return findOwnedJob(s.db.WithContext(ctx), userID, jobID)
}

// UpdateJob changes the given fields of one of the user's jobs. An empty name
// or an unusable rate keeps the current value.
func (s *Store) UpdateJob(ctx context.Context, userID, jobID uint, req UpdateJobRequest) (*models.Job, error) {
	var job *models.Job
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		job, err = findOwnedJob(tx, userID, jobID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			if name := strings.TrimSpace(*req.Name); name != "" {
				job.Name = name
			}
		}
		if req.Description != nil {
			job.Description = normalizeDescription(req.Description)
		}
		job.HourlyRate = rateOr(req.HourlyRate, job.HourlyRate)

		return tx.Model(job).
			Select("name", "description", "hourly_rate", "updated_at").
			Updates(map[string]any{
				"name":        job.Name,
				"description": job.Description,
				"hourly_rate": job.HourlyRate,
				"updated_at":  s.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes one of the user's jobs. Jobs referenced by any clock
// record are kept and ErrJobInUse is returned.
func (s *Store) DeleteJob(ctx context.Context, userID, jobID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedJob(tx, userID, jobID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.ClockRecord{}).Where("job_id = ?", jobID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrJobInUse
		}

		return tx.Where("id = ? AND user_id = ?", jobID, userID).Delete(&models.Job{}).Error
	})
}

func findOwnedJob(tx *gorm.DB, userID, jobID uint) (*models.Job, error) {
	var job models.Job
	err := tx.Where("id = ? AND user_id = ?", jobID, userID).Take(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// rateOr returns rate when it is usable and fallback otherwise.
func rateOr(rate *float64, fallback float64) float64 {
	if rate == nil || *rate <= 0 || math.IsNaN(*rate) || math.IsInf(*rate, 0) {
		return fallback
	}
	return *rate
}

func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
