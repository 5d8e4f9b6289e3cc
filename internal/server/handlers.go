package server

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/timesheet"
)

// decodeBody decodes an optional JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := decodeJSON(r, v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	if errors.Is(err, db.ErrValidation) {
		return err
	}
	return db.Invalid("invalid json")
}

/* ---------- Auth ---------- */

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerReq
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.auth.Register(r.Context(), in.Username, in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Printf("[http] registered user %d (admin=%t)", res.User.ID, res.User.IsAdmin)
	writeJSON(w, http.StatusCreated, authResp{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    toUserDTO(res.User),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginReq
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.auth.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResp{
		Message: "Login successful",
		Token:   res.Token,
		User:    toUserDTO(res.User),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserDTO(currentUser(r)))
}

/* ---------- Clock ---------- */

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID, err := parseID(r.URL.Query().Get("job_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	st, err := s.store.Status(r.Context(), currentUser(r).ID, jobID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := statusResp{ClockedIn: st.ClockedIn, Date: st.Date, JobID: st.JobID}
	if st.Record != nil {
		out.ClockInTime = clockString(&st.Record.ClockIn)
		out.ClockOutTime = clockString(st.Record.ClockOut)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleClockIn(w http.ResponseWriter, r *http.Request) {
	var in clockReq
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user := currentUser(r)
	rec, err := s.store.ClockIn(r.Context(), user.ID, in.JobID.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Printf("[http] user %d clocked in (job %s)", user.ID, jobIDString(rec.JobID))
	writeJSON(w, http.StatusOK, clockInResp{
		Message:     "Clocked in successfully",
		ID:          rec.ID,
		ClockInTime: *clockString(&rec.ClockIn),
		Date:        rec.Date,
		JobID:       rec.JobID,
	})
}

func (s *Server) handleClockOut(w http.ResponseWriter, r *http.Request) {
	var in clockReq
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user := currentUser(r)
	rec, err := s.store.ClockOut(r.Context(), user.ID, in.JobID.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Printf("[http] user %d clocked out (job %s)", user.ID, jobIDString(rec.JobID))
	writeJSON(w, http.StatusOK, clockOutResp{
		Message:      "Clocked out successfully",
		ClockInTime:  *clockString(&rec.ClockIn),
		ClockOutTime: *clockString(rec.ClockOut),
		Date:         rec.Date,
		JobID:        rec.JobID,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobID, err := parseID(q.Get("job_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	rep, err := s.store.Report(r.Context(), currentUser(r).ID, db.ReportFilter{
		Period: timesheet.Period(q.Get("period")),
		JobID:  jobID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportResp(rep))
}

/* ---------- Jobs ---------- */

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]jobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobDTO(&jobs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": out})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var in jobReq
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	req := db.CreateJobRequest{Description: in.Description, HourlyRate: in.HourlyRate.Value}
	if in.Name != nil {
		req.Name = *in.Name
	}
	job, err := s.store.CreateJob(r.Context(), currentUser(r).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Job created successfully",
		"job":     toJobDTO(job),
	})
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.jobIDParam(w, r)
	if !ok {
		return
	}
	var in jobReq
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	job, err := s.store.UpdateJob(r.Context(), currentUser(r).ID, jobID, db.UpdateJobRequest{
		Name:        in.Name,
		Description: in.Description,
		HourlyRate:  in.HourlyRate.Value,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Job updated successfully",
		"job":     toJobDTO(job),
	})
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.jobIDParam(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteJob(r.Context(), currentUser(r).ID, jobID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
}

func (s *Server) jobIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil || id == nil {
		errorJSON(w, http.StatusNotFound, db.ErrJobNotFound.Error())
		return 0, false
	}
	return *id, true
}

/* ---------- Admin ---------- */

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]adminUserDTO, 0, len(users))
	for i := range users {
		out = append(out, adminUserDTO{
			userDTO:          toUserDTO(&users[i].User),
			TotalRecords:     users[i].TotalRecords,
			CompletedRecords: users[i].CompletedRecords,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.UsageStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResp{
		Users:            st.Users,
		Admins:           st.Admins,
		Jobs:             st.Jobs,
		Records:          st.Records,
		CompletedRecords: st.CompletedRecords,
		OpenRecords:      st.OpenRecords,
		TotalHours:       timesheet.FormatHours(st.TotalHours),
		TotalSalary:      timesheet.FormatMoney(st.TotalSalary),
	})
}
