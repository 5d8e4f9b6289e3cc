package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punch/internal/config"
	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errNoUser = errors.New("no user selected. Pass --user or set PUNCH_USER")

var rootCmd = &cobra.Command{
	Use:   "punch",
	Short: "A time clock with per-job pay reports",
	Long: `punch tracks clock-in/clock-out sessions, optionally per job with its own
hourly rate, and reports hours and pay for today, the last week, the last month or all time.
Run it as a CLI against a local database or serve the same data over HTTP with 'punch serve'.`,
	SilenceUsage: true,
}

// app is what a command gets once config and the store are open.
type app struct {
	cfg   *config.Config
	store *db.Store
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, store: store}, nil
}

// withDB wraps a command function to open the config and database first
func withDB(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer a.store.Close()
		if err := fn(cmd, args, a); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

// actingUser resolves --user, falling back to PUNCH_USER.
func (a *app) actingUser(ctx context.Context, cmd *cobra.Command) (*models.User, error) {
	login, _ := cmd.Flags().GetString("user")
	if strings.TrimSpace(login) == "" {
		login = a.cfg.User
	}
	if strings.TrimSpace(login) == "" {
		return nil, errNoUser
	}
	u, err := a.store.FindUserByLogin(ctx, login)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, fmt.Errorf("user %q not found. Create it with 'punch register'", login)
	}
	return u, err
}

// jobFlag returns the --job flag as a job scope; 0 or unset means no job.
func jobFlag(cmd *cobra.Command) *uint {
	id, _ := cmd.Flags().GetUint("job")
	if id == 0 {
		return nil
	}
	return &id
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("punch %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("user", "u", "", "Username or email to act as (default $PUNCH_USER)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
