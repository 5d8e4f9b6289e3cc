package db

import (
	"context"
	"errors"
	"testing"
)

func TestClockIn_ThenStatusIsOpen(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")

	rec, err := s.ClockIn(ctx, uid, nil)
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	if rec.ID == 0 {
		t.Error("record id should be set")
	}
	if rec.Date != "2024-01-10" {
		t.Errorf("date = %q, want %q", rec.Date, "2024-01-10")
	}
	if rec.ClockOut != nil {
		t.Error("new record should be open")
	}

	st, err := s.Status(ctx, uid, nil)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.ClockedIn {
		t.Error("status should report clocked in")
	}
}

func TestClockIn_TwiceConflicts(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")

	first, err := s.ClockIn(ctx, uid, nil)
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	clock.Set("2024-01-10", "10:00:00")
	if _, err := s.ClockIn(ctx, uid, nil); !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("second ClockIn err = %v, want ErrAlreadyOpen", err)
	}

	st, err := s.Status(ctx, uid, nil)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Record == nil || st.Record.ID != first.ID || !st.ClockedIn {
		t.Errorf("first record should stay open and unmodified, got %+v", st.Record)
	}
	if !st.Record.ClockIn.Equal(first.ClockIn) {
		t.Errorf("clock-in changed: %v != %v", st.Record.ClockIn, first.ClockIn)
	}
}

func TestClockOut_WithoutOpenSession(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")

	if _, err := s.ClockOut(ctx, uid, nil); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("ClockOut err = %v, want ErrNotOpen", err)
	}
	rep, err := s.Report(ctx, uid, ReportFilter{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Totals.Records != 0 {
		t.Errorf("records = %d, want 0", rep.Totals.Records)
	}
}

func TestClockOut_ClosesSession(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")

	if _, err := s.ClockIn(ctx, uid, nil); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	clock.Set("2024-01-10", "12:30:00")
	rec, err := s.ClockOut(ctx, uid, nil)
	if err != nil {
		t.Fatalf("ClockOut: %v", err)
	}
	if rec.ClockOut == nil {
		t.Fatal("clock-out should be set")
	}
	if got := rec.ClockOut.Sub(rec.ClockIn).Hours(); got != 3.5 {
		t.Errorf("duration = %vh, want 3.5h", got)
	}

	st, err := s.Status(ctx, uid, nil)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.ClockedIn {
		t.Error("status should report clocked out")
	}
	if st.Record == nil || st.Record.ClockOut == nil {
		t.Error("status should return the closed record")
	}

	// A new session can be opened after closing.
	if _, err := s.ClockIn(ctx, uid, nil); err != nil {
		t.Fatalf("ClockIn after ClockOut: %v", err)
	}
}

func TestClockOut_EarlierThanClockInIsKept(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")

	clock.Set("2024-01-10", "17:00:00")
	if _, err := s.ClockIn(ctx, uid, nil); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	clock.Set("2024-01-10", "16:00:00") // clock skew
	rec, err := s.ClockOut(ctx, uid, nil)
	if err != nil {
		t.Fatalf("ClockOut: %v", err)
	}
	if !rec.ClockOut.Before(rec.ClockIn) {
		t.Errorf("clock-out %v should be before clock-in %v", rec.ClockOut, rec.ClockIn)
	}

	rep, err := s.Report(ctx, uid, ReportFilter{Period: "today"})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got := rep.Lines[0].Amount.Hours; got != -1 {
		t.Errorf("hours = %v, want -1", got)
	}
	if rep.Totals.CompletedRecords != 1 {
		t.Errorf("completed = %d, want 1", rep.Totals.CompletedRecords)
	}
}

func TestClockIn_DistinctScopesCoexist(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")
	jobA := mustJob(t, s, uid, "Cafe", 20)
	jobB := mustJob(t, s, uid, "Library", 22)

	for _, job := range []*uint{&jobA, &jobB, nil} {
		if _, err := s.ClockIn(ctx, uid, job); err != nil {
			t.Fatalf("ClockIn(%v): %v", job, err)
		}
	}

	open, err := s.OpenSessions(ctx, uid)
	if err != nil {
		t.Fatalf("OpenSessions: %v", err)
	}
	if len(open) != 3 {
		t.Fatalf("open sessions = %d, want 3", len(open))
	}

	// Closing the unscoped session leaves the job sessions open.
	if _, err := s.ClockOut(ctx, uid, nil); err != nil {
		t.Fatalf("ClockOut(nil): %v", err)
	}
	st, err := s.Status(ctx, uid, &jobA)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.ClockedIn {
		t.Error("job A session should still be open")
	}
	st, err = s.Status(ctx, uid, nil)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.ClockedIn {
		t.Error("unscoped session should be closed")
	}
}

func TestClockIn_ForeignJobRejected(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	owner := mustUser(t, s, "ada")
	other := mustUser(t, s, "bob")
	job := mustJob(t, s, owner, "Cafe", 20)

	if _, err := s.ClockIn(ctx, other, &job); !errors.Is(err, ErrInvalidJob) {
		t.Fatalf("ClockIn err = %v, want ErrInvalidJob", err)
	}
	missing := uint(999)
	if _, err := s.ClockIn(ctx, owner, &missing); !errors.Is(err, ErrInvalidJob) {
		t.Fatalf("ClockIn err = %v, want ErrInvalidJob", err)
	}
}

func TestClockIn_YesterdaysOpenSessionDoesNotBlock(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")

	clock.Set("2024-01-09", "22:00:00")
	if _, err := s.ClockIn(ctx, uid, nil); err != nil {
		t.Fatalf("ClockIn yesterday: %v", err)
	}

	clock.Set("2024-01-10", "08:00:00")
	st, err := s.Status(ctx, uid, nil)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.ClockedIn || st.Record != nil {
		t.Errorf("yesterday's session should not show today, got %+v", st)
	}
	if _, err := s.ClockOut(ctx, uid, nil); !errors.Is(err, ErrNotOpen) {
		t.Errorf("ClockOut err = %v, want ErrNotOpen", err)
	}
	if _, err := s.ClockIn(ctx, uid, nil); err != nil {
		t.Fatalf("ClockIn today: %v", err)
	}
}

func TestOpenSessionIndexRejectsDuplicates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")

	if _, err := s.ClockIn(ctx, uid, nil); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	// Bypass the ledger's check the way a racing request would.
	err := s.db.Exec(`INSERT INTO clock_records (created_at, user_id, job_key, date, clock_in)
		VALUES (?, ?, 0, ?, ?)`, s.Now(), uid, "2024-01-10", s.Now()).Error
	if !isUniqueViolation(err) {
		t.Fatalf("duplicate open insert err = %v, want unique violation", err)
	}
}
