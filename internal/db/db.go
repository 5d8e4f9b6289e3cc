package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/punch/internal/config"
	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/timesheet"
)

// Store owns the database handle and every read and write the app performs.
type Store struct {
	db          *gorm.DB
	now         func() time.Time
	defaultRate float64
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDefaultRate sets the hourly rate used for sessions without a job rate.
func WithDefaultRate(rate float64) Option {
	return func(s *Store) {
		if rate > 0 {
			s.defaultRate = rate
		}
	}
}

// Open connects to Postgres when cfg.DatabaseURL is set and to the SQLite
// file at cfg.DBPath otherwise, then runs migrations.
func Open(cfg *config.Config, opts ...Option) (*Store, error) {
	gcfg := &gorm.Config{
		Logger:         newLogger(cfg.DBLogLevel),
		TranslateError: true,
	}

	var (
		gdb *gorm.DB
		err error
	)
	if cfg.UsesPostgres() {
		gdb, err = openPostgres(cfg.DatabaseURL, gcfg)
	} else {
		gdb, err = openSQLite(cfg.DBPath, gcfg)
	}
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithDefaultRate(cfg.DefaultHourlyRate)}, opts...)
	return New(gdb, opts...)
}

// New wraps an open gorm handle and runs migrations.
func New(gdb *gorm.DB, opts ...Option) (*Store, error) {
	s := &Store{db: gdb, now: time.Now, defaultRate: timesheet.DefaultHourlyRate}
	for _, opt := range opts {
		opt(s)
	}
	if err := runMigrations(gdb); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

func openSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	gdb, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer; a single connection keeps transactions serialised.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

func openPostgres(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	if strings.Contains(dsn, "localhost") && !strings.Contains(dsn, "sslmode=") {
		if strings.Contains(dsn, "?") {
			dsn += "&sslmode=disable"
		} else {
			dsn += "?sslmode=disable"
		}
	}

	pcfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	sqlDB := stdlib.OpenDB(*pcfg)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Fast fail if unreachable
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gcfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gdb, nil
}

func newLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "[db] ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             1500 * time.Millisecond,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// runMigrations creates/updates the database schema
func runMigrations(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.AdminClaim{},
		&models.Job{},
		&models.ClockRecord{},
	); err != nil {
		return err
	}
	// At most one open session per user, job scope and day.
	return gdb.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_clock_records_one_open
		ON clock_records (user_id, job_key, date) WHERE clock_out IS NULL`).Error
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Now returns the store's current time truncated to whole seconds.
func (s *Store) Now() time.Time {
	return s.now().Truncate(time.Second)
}

// DefaultRate is the hourly rate applied to sessions without a job rate.
func (s *Store) DefaultRate() float64 {
	return s.defaultRate
}
