package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/balkashynov/punch/internal/auth"
	"github.com/balkashynov/punch/internal/config"
	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/security"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func (c *fixedClock) Set(clock string) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", "2024-01-10 "+clock, time.Local)
	if err != nil {
		panic(err)
	}
	c.t = t
}

type testEnv struct {
	t     *testing.T
	h     http.Handler
	clock *fixedClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &fixedClock{}
	clock.Set("09:00:00")

	cfg := &config.Config{
		Env:               "test",
		HTTPAddr:          ":0",
		DBPath:            filepath.Join(t.TempDir(), "punch.db"),
		DBLogLevel:        "silent",
		JWTSecret:         "test-secret",
		JWTTTL:            "1h",
		BcryptCost:        4,
		CORSOrigins:       "http://localhost:3000",
		DefaultHourlyRate: 18,
	}
	store, err := db.Open(cfg, db.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	authSvc := auth.NewService(store, security.NewHasher(cfg.BcryptCost), security.NewTokenProvider(cfg.JWTSecret, cfg.TokenTTL()))
	return &testEnv{t: t, h: New(cfg, store, authSvc).Routes(), clock: clock}
}

func (e *testEnv) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			e.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, out
}

func (e *testEnv) register(username string) string {
	e.t.Helper()
	rec, out := e.do(http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		e.t.Fatalf("register %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	return out["token"].(string)
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	rec, out := e.do(http.MethodGet, "/health", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if out["status"] != "ok" || out["environment"] != "test" {
		t.Errorf("unexpected body %v", out)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)
	e.register("ada")

	rec, out := e.do(http.MethodPost, "/api/register", "", map[string]string{
		"username": "ada", "email": "other@example.com", "password": "secret1",
	})
	expectStatus(t, rec, http.StatusConflict)
	if out["error"] == nil {
		t.Error("expected error message")
	}

	rec, _ = e.do(http.MethodPost, "/api/register", "", map[string]string{
		"username": "bob", "email": "bob@example.com", "password": "123",
	})
	expectStatus(t, rec, http.StatusBadRequest)

	rec, out = e.do(http.MethodPost, "/api/login", "", map[string]string{"username": "ada@example.com", "password": "secret1"})
	expectStatus(t, rec, http.StatusOK)
	user := out["user"].(map[string]any)
	if user["isAdmin"] != true {
		t.Errorf("first user should be admin: %v", user)
	}

	rec, _ = e.do(http.MethodPost, "/api/login", "", map[string]string{"username": "ada", "password": "nope-nope"})
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestAuthRequired(t *testing.T) {
	e := newTestEnv(t)

	rec, _ := e.do(http.MethodGet, "/api/me", "", nil)
	expectStatus(t, rec, http.StatusUnauthorized)

	rec, _ = e.do(http.MethodGet, "/api/me", "not-a-token", nil)
	expectStatus(t, rec, http.StatusForbidden)

	tok := e.register("ada")
	rec, out := e.do(http.MethodGet, "/api/me", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	if out["username"] != "ada" {
		t.Errorf("username = %v", out["username"])
	}
}

func TestClockFlowAndReport(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register("ada")

	rec, out := e.do(http.MethodPost, "/api/jobs", tok, map[string]any{"name": "Cafe", "hourly_rate": "$20/h"})
	expectStatus(t, rec, http.StatusCreated)
	job := out["job"].(map[string]any)
	if job["hourly_rate"] != 20.0 {
		t.Fatalf("hourly_rate = %v, want 20", job["hourly_rate"])
	}
	jobID := job["id"].(float64)

	rec, out = e.do(http.MethodPost, "/api/clock-in", tok, map[string]any{"job_id": jobID})
	expectStatus(t, rec, http.StatusOK)
	if out["clockInTime"] != "09:00:00" || out["date"] != "2024-01-10" {
		t.Errorf("clock-in body %v", out)
	}

	rec, _ = e.do(http.MethodPost, "/api/clock-in", tok, map[string]any{"job_id": jobID})
	expectStatus(t, rec, http.StatusConflict)

	rec, out = e.do(http.MethodGet, fmt.Sprintf("/api/status?job_id=%d", int(jobID)), tok, nil)
	expectStatus(t, rec, http.StatusOK)
	if out["clockedIn"] != true {
		t.Errorf("status body %v", out)
	}

	rec, out = e.do(http.MethodGet, "/api/status", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	if out["clockedIn"] != false || out["jobId"] != nil {
		t.Errorf("unscoped status should be clocked out: %v", out)
	}

	e.clock.Set("17:00:00")
	rec, out = e.do(http.MethodPost, "/api/clock-out", tok, map[string]any{"job_id": jobID})
	expectStatus(t, rec, http.StatusOK)
	if out["clockOutTime"] != "17:00:00" {
		t.Errorf("clock-out body %v", out)
	}

	rec, _ = e.do(http.MethodPost, "/api/clock-out", tok, map[string]any{"job_id": jobID})
	expectStatus(t, rec, http.StatusConflict)

	rec, out = e.do(http.MethodGet, "/api/report?period=today", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	if out["totalHours"] != "8.00" || out["totalSalary"] != "160.00" {
		t.Errorf("totals = %v / %v, want 8.00 / 160.00", out["totalHours"], out["totalSalary"])
	}
	records := out["records"].([]any)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	r0 := records[0].(map[string]any)
	if r0["hours"] != "8.00" || r0["salary"] != "160.00" || r0["job_name"] != "Cafe" {
		t.Errorf("record = %v", r0)
	}

	rec, _ = e.do(http.MethodGet, "/api/report?period=fortnight", tok, nil)
	expectStatus(t, rec, http.StatusBadRequest)

	rec, _ = e.do(http.MethodDelete, fmt.Sprintf("/api/jobs/%d", int(jobID)), tok, nil)
	expectStatus(t, rec, http.StatusConflict)
}

func TestReport_OpenSessionHasNullAmounts(t *testing.T) {
	e := newTestEnv(t)
	tok := e.register("ada")

	rec, _ := e.do(http.MethodPost, "/api/clock-in", tok, nil)
	expectStatus(t, rec, http.StatusOK)

	rec, out := e.do(http.MethodGet, "/api/report", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	r0 := out["records"].([]any)[0].(map[string]any)
	if r0["hours"] != nil || r0["salary"] != nil || r0["clock_out"] != nil {
		t.Errorf("open record should have null amounts: %v", r0)
	}
	if r0["hourly_rate"] != 18.0 {
		t.Errorf("hourly_rate = %v, want default 18", r0["hourly_rate"])
	}
	if out["totalRecords"] != 1.0 || out["completedRecords"] != 0.0 || out["totalHours"] != "0.00" {
		t.Errorf("totals = %v", out)
	}
}

func TestJobs_CRUD(t *testing.T) {
	e := newTestEnv(t)
	ada := e.register("ada")
	bob := e.register("bob")

	rec, _ := e.do(http.MethodPost, "/api/jobs", ada, map[string]any{"name": " "})
	expectStatus(t, rec, http.StatusBadRequest)

	rec, out := e.do(http.MethodPost, "/api/jobs", ada, map[string]any{"name": "Cafe", "hourly_rate": "abc"})
	expectStatus(t, rec, http.StatusCreated)
	job := out["job"].(map[string]any)
	if job["hourly_rate"] != 18.0 {
		t.Errorf("non-numeric rate should default to 18, got %v", job["hourly_rate"])
	}
	path := fmt.Sprintf("/api/jobs/%d", int(job["id"].(float64)))

	rec, out = e.do(http.MethodPut, path, ada, map[string]any{"hourly_rate": 21.5})
	expectStatus(t, rec, http.StatusOK)
	if got := out["job"].(map[string]any); got["hourly_rate"] != 21.5 || got["name"] != "Cafe" {
		t.Errorf("updated job = %v", got)
	}

	rec, _ = e.do(http.MethodPut, path, bob, map[string]any{"name": "Mine"})
	expectStatus(t, rec, http.StatusNotFound)

	rec, out = e.do(http.MethodGet, "/api/jobs", bob, nil)
	expectStatus(t, rec, http.StatusOK)
	if jobs := out["jobs"].([]any); len(jobs) != 0 {
		t.Errorf("bob should see no jobs, got %d", len(jobs))
	}

	rec, _ = e.do(http.MethodPost, "/api/clock-in", bob, map[string]any{"job_id": job["id"]})
	expectStatus(t, rec, http.StatusBadRequest)

	rec, _ = e.do(http.MethodDelete, path, ada, nil)
	expectStatus(t, rec, http.StatusOK)
	rec, _ = e.do(http.MethodDelete, path, ada, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestAdminRoutes(t *testing.T) {
	e := newTestEnv(t)
	admin := e.register("ada")
	user := e.register("bob")

	rec, _ := e.do(http.MethodGet, "/api/admin/users", user, nil)
	expectStatus(t, rec, http.StatusForbidden)

	rec, _ = e.do(http.MethodPost, "/api/clock-in", user, nil)
	expectStatus(t, rec, http.StatusOK)

	rec, out := e.do(http.MethodGet, "/api/admin/users", admin, nil)
	expectStatus(t, rec, http.StatusOK)
	users := out["users"].([]any)
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2", len(users))
	}

	rec, out = e.do(http.MethodGet, "/api/admin/stats", admin, nil)
	expectStatus(t, rec, http.StatusOK)
	if out["users"] != 2.0 || out["admins"] != 1.0 || out["openRecords"] != 1.0 {
		t.Errorf("stats = %v", out)
	}
}
