package db

import (
	"context"
	"errors"
	"testing"
)

func TestCreateJob_Defaults(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")

	desc := "  "
	job, err := s.CreateJob(ctx, uid, CreateJobRequest{Name: "  Cafe  ", Description: &desc})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.Name != "Cafe" {
		t.Errorf("name = %q, want %q", job.Name, "Cafe")
	}
	if job.Description != nil {
		t.Errorf("blank description should be nil, got %q", *job.Description)
	}
	if job.HourlyRate != 18.0 {
		t.Errorf("rate = %v, want default 18", job.HourlyRate)
	}

	negative := -3.0
	job, err = s.CreateJob(ctx, uid, CreateJobRequest{Name: "Bar", HourlyRate: &negative})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.HourlyRate != 18.0 {
		t.Errorf("negative rate should fall back to 18, got %v", job.HourlyRate)
	}
}

func TestCreateJob_NameRequired(t *testing.T) {
	s, _ := newTestStore(t)
	uid := mustUser(t, s, "ada")

	_, err := s.CreateJob(context.Background(), uid, CreateJobRequest{Name: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if err.Error() != "job name is required" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestListJobs_OwnerOnly(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	ada := mustUser(t, s, "ada")
	bob := mustUser(t, s, "bob")
	mustJob(t, s, ada, "Cafe", 20)
	mustJob(t, s, ada, "Library", 22)
	mustJob(t, s, bob, "Garage", 30)

	jobs, err := s.ListJobs(ctx, ada)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(jobs))
	}
	if jobs[0].Name != "Library" {
		t.Errorf("newest job first: got %q", jobs[0].Name)
	}
}

func TestUpdateJob(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")
	id := mustJob(t, s, uid, "Cafe", 20)

	empty := ""
	note := "weekends"
	rate := 25.0
	job, err := s.UpdateJob(ctx, uid, id, UpdateJobRequest{Name: &empty, Description: &note, HourlyRate: &rate})
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if job.Name != "Cafe" {
		t.Errorf("empty name should keep %q, got %q", "Cafe", job.Name)
	}
	if job.Description == nil || *job.Description != "weekends" {
		t.Errorf("description = %v", job.Description)
	}

	stored, err := s.GetJob(ctx, uid, id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if stored.HourlyRate != 25 {
		t.Errorf("stored rate = %v, want 25", stored.HourlyRate)
	}

	other := mustUser(t, s, "bob")
	if _, err := s.UpdateJob(ctx, other, id, UpdateJobRequest{HourlyRate: &rate}); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("foreign update err = %v, want ErrJobNotFound", err)
	}
}

func TestDeleteJob_UnusedSucceeds(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")
	id := mustJob(t, s, uid, "Cafe", 20)

	if err := s.DeleteJob(ctx, uid, id); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if _, err := s.GetJob(ctx, uid, id); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("GetJob after delete err = %v, want ErrJobNotFound", err)
	}
}

func TestDeleteJob_ReferencedIsRefused(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	uid := mustUser(t, s, "ada")
	id := mustJob(t, s, uid, "Cafe", 20)

	if _, err := s.ClockIn(ctx, uid, &id); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	if err := s.DeleteJob(ctx, uid, id); !errors.Is(err, ErrJobInUse) {
		t.Fatalf("DeleteJob err = %v, want ErrJobInUse", err)
	}
	if _, err := s.GetJob(ctx, uid, id); err != nil {
		t.Errorf("job should remain, GetJob err = %v", err)
	}
}

func TestDeleteJob_ForeignNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	ada := mustUser(t, s, "ada")
	bob := mustUser(t, s, "bob")
	id := mustJob(t, s, ada, "Cafe", 20)

	if err := s.DeleteJob(ctx, bob, id); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("DeleteJob err = %v, want ErrJobNotFound", err)
	}
}
