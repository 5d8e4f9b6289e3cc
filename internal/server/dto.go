package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/parser"
	"github.com/balkashynov/punch/internal/timesheet"
)

/* ---------- Inputs ---------- */

// rateInput accepts an hourly rate as a JSON number or a string such as
// "20", "18,50" or "$20/h". Anything unusable decodes to nil so the default applies.
type rateInput struct {
	Value *float64
}

func (r *rateInput) UnmarshalJSON(b []byte) error {
	r.Value = nil
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	} else {
		raw = string(b)
	}
	if rate, ok := parser.ParseRate(raw); ok {
		r.Value = &rate
	}
	return nil
}

// idInput accepts a job id as a JSON number or numeric string. Null, 0 and ""
// mean no job.
type idInput struct {
	Value *uint
}

func (i *idInput) UnmarshalJSON(b []byte) error {
	i.Value = nil
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	id, err := parseID(raw)
	if err != nil {
		return err
	}
	i.Value = id
	return nil
}

func parseID(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, db.Invalid("invalid job id %q", raw)
	}
	if n == 0 {
		return nil, nil
	}
	id := uint(n)
	return &id, nil
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type clockReq struct {
	JobID idInput `json:"job_id"`
}

type jobReq struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	HourlyRate  rateInput `json:"hourly_rate"`
}

/* ---------- Outputs ---------- */

type userDTO struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt}
}

type authResp struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    userDTO `json:"user"`
}

type statusResp struct {
	ClockedIn    bool    `json:"clockedIn"`
	ClockInTime  *string `json:"clockInTime"`
	ClockOutTime *string `json:"clockOutTime"`
	Date         string  `json:"date"`
	JobID        *uint   `json:"jobId"`
}

type clockInResp struct {
	Message     string `json:"message"`
	ID          uint   `json:"id"`
	ClockInTime string `json:"clockInTime"`
	Date        string `json:"date"`
	JobID       *uint  `json:"jobId"`
}

type clockOutResp struct {
	Message      string `json:"message"`
	ClockInTime  string `json:"clockInTime"`
	ClockOutTime string `json:"clockOutTime"`
	Date         string `json:"date"`
	JobID        *uint  `json:"jobId"`
}

type recordDTO struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"user_id"`
	JobID      *uint   `json:"job_id"`
	JobName    *string `json:"job_name"`
	Date       string  `json:"date"`
	ClockIn    *string `json:"clock_in"`
	ClockOut   *string `json:"clock_out"`
	HourlyRate float64 `json:"hourly_rate"`
	Hours      *string `json:"hours"`
	Salary     *string `json:"salary"`
}

type reportResp struct {
	Records          []recordDTO `json:"records"`
	TotalRecords     int         `json:"totalRecords"`
	CompletedRecords int         `json:"completedRecords"`
	TotalHours       string      `json:"totalHours"`
	TotalSalary      string      `json:"totalSalary"`
}

func toReportResp(rep timesheet.Report) reportResp {
	out := reportResp{
		Records:          make([]recordDTO, 0, len(rep.Lines)),
		TotalRecords:     rep.Totals.Records,
		CompletedRecords: rep.Totals.CompletedRecords,
		TotalHours:       timesheet.FormatHours(rep.Totals.Hours),
		TotalSalary:      timesheet.FormatMoney(rep.Totals.Salary),
	}
	for _, l := range rep.Lines {
		out.Records = append(out.Records, recordDTO{
			ID:         l.ID,
			UserID:     l.UserID,
			JobID:      l.JobID,
			JobName:    l.JobName,
			Date:       l.Date,
			ClockIn:    clockString(l.ClockIn),
			ClockOut:   clockString(l.ClockOut),
			HourlyRate: l.Rate,
			Hours:      l.Amount.HoursString(),
			Salary:     l.Amount.PayString(),
		})
	}
	return out
}

type jobDTO struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	HourlyRate  float64   `json:"hourly_rate"`
	CreatedAt   time.Time `json:"created_at"`
}

func toJobDTO(j *models.Job) jobDTO {
	return jobDTO{
		ID:          j.ID,
		UserID:      j.UserID,
		Name:        j.Name,
		Description: j.Description,
		HourlyRate:  j.HourlyRate,
		CreatedAt:   j.CreatedAt,
	}
}

type adminUserDTO struct {
	userDTO
	TotalRecords     int64 `json:"totalRecords"`
	CompletedRecords int64 `json:"completedRecords"`
}

type statsResp struct {
	Users            int64  `json:"users"`
	Admins           int64  `json:"admins"`
	Jobs             int64  `json:"jobs"`
	Records          int    `json:"records"`
	CompletedRecords int    `json:"completedRecords"`
	OpenRecords      int    `json:"openRecords"`
	TotalHours       string `json:"totalHours"`
	TotalSalary      string `json:"totalSalary"`
}

// clockString renders an instant as a local wall-clock time.
func clockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Local().Format(timesheet.ClockLayout)
	return &s
}

func jobIDString(id *uint) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprint(*id)
}
