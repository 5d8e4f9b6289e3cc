package db

import (
	"context"

	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/timesheet"
)

// ReportFilter selects the sessions a report covers.
type ReportFilter struct {
	Period timesheet.Period
	JobID  *uint
}

// UsageStats aggregates activity across all users.
type UsageStats struct {
	Users            int64
	Admins           int64
	Jobs             int64
	Records          int
	CompletedRecords int
	OpenRecords      int
	TotalHours       float64
	TotalSalary      float64
}

// Report builds the user's report for the filter. Rates come from each job's
// current row, so editing a job's rate changes past sessions' pay.
func (s *Store) Report(ctx context.Context, userID uint, f ReportFilter) (timesheet.Report, error) {
	period, err := timesheet.ParsePeriod(string(f.Period))
	if err != nil {
		return timesheet.Report{}, Invalid("%v", err)
	}
	w := period.WindowAt(s.Now())

	q := s.db.WithContext(ctx).Preload("Job").Where("user_id = ?", userID)
	if f.JobID != nil {
		q = q.Where("job_id = ?", *f.JobID)
	}
	switch {
	case w.Exact != "":
		q = q.Where("date = ?", w.Exact)
	case w.From != "":
		q = q.Where("date >= ?", w.From)
	}

	var recs []models.ClockRecord
	if err := q.Order("date DESC, id DESC").Find(&recs).Error; err != nil {
		return timesheet.Report{}, err
	}
	return timesheet.Build(toEntries(recs), s.defaultRate), nil
}

// UsageStats summarises users, jobs and sessions across the whole system.
func (s *Store) UsageStats(ctx context.Context) (*UsageStats, error) {
	db := s.db.WithContext(ctx)
	st := &UsageStats{}

	if err := db.Model(&models.User{}).Count(&st.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&st.Admins).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Job{}).Count(&st.Jobs).Error; err != nil {
		return nil, err
	}

	var recs []models.ClockRecord
	if err := db.Preload("Job").Find(&recs).Error; err != nil {
		return nil, err
	}
	rep := timesheet.Build(toEntries(recs), s.defaultRate)
	st.Records = rep.Totals.Records
	st.CompletedRecords = rep.Totals.CompletedRecords
	st.OpenRecords = rep.Totals.Records - rep.Totals.CompletedRecords
	st.TotalHours = rep.Totals.Hours
	st.TotalSalary = rep.Totals.Salary
	return st, nil
}

func toEntries(recs []models.ClockRecord) []timesheet.Entry {
	entries := make([]timesheet.Entry, 0, len(recs))
	for i := range recs {
		r := recs[i]
		in := r.ClockIn
		e := timesheet.Entry{
			ID:       r.ID,
			UserID:   r.UserID,
			JobID:    r.JobID,
			Date:     r.Date,
			ClockIn:  &in,
			ClockOut: r.ClockOut,
		}
		if r.Job != nil {
			name, rate := r.Job.Name, r.Job.HourlyRate
			e.JobName = &name
			e.JobRate = &rate
		}
		entries = append(entries, e)
	}
	return entries
}
