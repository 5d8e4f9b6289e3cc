package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/tui"
)

var errNotAdmin = errors.New("admin access required")

func (a *app) actingAdmin(ctx context.Context, cmd *cobra.Command) (*models.User, error) {
	u, err := a.actingUser(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin {
		return nil, errNotAdmin
	}
	return u, nil
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all users (admin)",
	Args:  cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		if _, err := a.actingAdmin(ctx, cmd); err != nil {
			return err
		}
		users, err := a.store.ListUsers(ctx)
		if err != nil {
			return err
		}
		fmt.Println(tui.RenderUsers(users))
		return nil
	}),
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage across all users (admin)",
	Args:  cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		if _, err := a.actingAdmin(ctx, cmd); err != nil {
			return err
		}
		st, err := a.store.UsageStats(ctx)
		if err != nil {
			return err
		}
		fmt.Println(tui.RenderStats(st))
		return nil
	}),
}
