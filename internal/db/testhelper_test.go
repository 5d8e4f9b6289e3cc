package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/balkashynov/punch/internal/config"
)

// testClock is a settable clock for stores under test.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Set(date, clock string) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock, time.Local)
	if err != nil {
		panic(err)
	}
	c.t = t
}

func newTestStore(t *testing.T) (*Store, *testClock) {
	t.Helper()
	clock := &testClock{}
	clock.Set("2024-01-10", "09:00:00")

	cfg := &config.Config{
		DBPath:            filepath.Join(t.TempDir(), "punch.db"),
		DBLogLevel:        "silent",
		DefaultHourlyRate: 18.0,
	}
	s, err := Open(cfg, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, clock
}

func mustUser(t *testing.T, s *Store, name string) uint {
	t.Helper()
	u, err := s.CreateUser(context.Background(), CreateUserRequest{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", name, err)
	}
	return u.ID
}

func mustJob(t *testing.T, s *Store, userID uint, name string, rate float64) uint {
	t.Helper()
	j, err := s.CreateJob(context.Background(), userID, CreateJobRequest{Name: name, HourlyRate: &rate})
	if err != nil {
		t.Fatalf("CreateJob(%s): %v", name, err)
	}
	return j.ID
}
