package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for punch",
	Long:  `Display detailed help for all punch commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
██████╗ ██╗   ██╗███╗   ██╗ ██████╗██╗  ██╗
██╔══██╗██║   ██║████╗  ██║██╔════╝██║  ██║
██████╔╝██║   ██║██╔██╗ ██║██║     ███████║
██╔═══╝ ██║   ██║██║╚██╗██║██║     ██╔══██║
██║     ╚██████╔╝██║ ╚████║╚██████╗██║  ██║
╚═╝      ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝

punch - time clock with per-job pay

GLOBAL FLAGS:
  -u, --user              Username or email to act as (or set PUNCH_USER)

ACCOUNT:
  register <user> <email> Create an account (the first one is admin)
    -p, --password        Password, at least 6 characters

CLOCK:
  in                      Clock in for today and open the live timer
    --job                 Job ID (omit for sessions without a job)
    --no-ui               Clock in without the timer

    Timer keys:
      o             Clock out
      esc/q         Exit, keep the session running

  out                     Clock out of today's open session
    --job                 Job ID
  status                  Show today's open sessions
    --job                 Show one scope only

REPORTS:
  report                  Sessions with hours and pay
    --period              all|today|week|month (default all)
    --job                 Only one job
    --json                JSON output
  week                    Hours per job and weekday, this calendar week

JOBS:
  jobs                    List your jobs
  jobs add [name]         Add a job
    --rate                Hourly rate: 20, 18.50, $20/h (default 18)
    --note                Description
    --no-ui               Skip the interactive form
  jobs edit <id>          Edit a job (rate changes apply to past sessions)
    --name, --rate, --note, --no-ui
  jobs rm <id>            Delete a job that has no sessions

ADMIN:
  users                   All accounts with session counts
  stats                   Usage across all accounts

SERVER:
  serve                   Serve the HTTP API on HTTP_ADDR (default :4000)

  version                 Print version
  help                    Show this help

`)
}
