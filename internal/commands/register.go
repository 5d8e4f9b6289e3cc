package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <email>",
	Short: "Create an account",
	Long: `Create an account. The first account ever created becomes the administrator.

Example:
  punch register ada ada@example.com --password s3cret!`,
	Args: cobra.ExactArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		password, _ := cmd.Flags().GetString("password")
		res, err := newAuthService(a).Register(cmd.Context(), args[0], args[1], password)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Created user #%d: %s <%s>\n", res.User.ID, res.User.Username, res.User.Email)
		if res.User.IsAdmin {
			fmt.Println("👑 This is the first account, so it is the administrator.")
		}
		fmt.Printf("Use it with --user %s or export PUNCH_USER=%s\n", res.User.Username, res.User.Username)
		return nil
	}),
}

func init() {
	registerCmd.Flags().StringP("password", "p", "", "Password (at least 6 characters)")
	_ = registerCmd.MarkFlagRequired("password")
}
