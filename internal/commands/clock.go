package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punch/internal/timesheet"
	"github.com/balkashynov/punch/internal/tui"
)

var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in",
	Long: `Clock in for today, optionally on a job. Opens the live timer by default; press o there to clock out.

Examples:
  punch in              # Clock in without a job
  punch in --job 3      # Clock in on job #3
  punch in --no-ui      # Clock in and return immediately`,
	Args: cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		user, err := a.actingUser(ctx, cmd)
		if err != nil {
			return err
		}

		jobID := jobFlag(cmd)
		rec, err := a.store.ClockIn(ctx, user.ID, jobID)
		if err != nil {
			return err
		}

		rate := a.store.DefaultRate()
		if jobID != nil {
			job, err := a.store.GetJob(ctx, user.ID, *jobID)
			if err != nil {
				return err
			}
			rec.Job = job
			rate = timesheet.ResolveRate(&job.HourlyRate, rate)
		}

		if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
			name := "no job"
			if rec.Job != nil {
				name = rec.Job.Name
			}
			fmt.Printf("⏱️  Clocked in (%s) at %s on %s\n", name, rec.ClockIn.Local().Format(timesheet.ClockLayout), rec.Date)
			return nil
		}
		return tui.RunTimerTUI(ctx, a.store, user.ID, rec, rate)
	}),
}

var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out",
	Args:  cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		user, err := a.actingUser(ctx, cmd)
		if err != nil {
			return err
		}

		rec, err := a.store.ClockOut(ctx, user.ID, jobFlag(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("⏹️  Clocked out at %s (in at %s, %s)\n",
			rec.ClockOut.Local().Format(timesheet.ClockLayout),
			rec.ClockIn.Local().Format(timesheet.ClockLayout),
			rec.Date)
		fmt.Printf("Session duration: %s\n", tui.FormatDuration(rec.ClockOut.Sub(rec.ClockIn)))
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are clocked in today",
	Args:  cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		user, err := a.actingUser(ctx, cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("job") {
			st, err := a.store.Status(ctx, user.ID, jobFlag(cmd))
			if err != nil {
				return err
			}
			switch {
			case st.Record == nil:
				fmt.Printf("Not clocked in on %s\n", st.Date)
			case st.ClockedIn:
				fmt.Printf("⏱️  Clocked in since %s (%s elapsed)\n",
					st.Record.ClockIn.Local().Format(timesheet.ClockLayout),
					tui.FormatDuration(time.Since(st.Record.ClockIn)))
			default:
				fmt.Printf("Clocked out at %s (in at %s)\n",
					st.Record.ClockOut.Local().Format(timesheet.ClockLayout),
					st.Record.ClockIn.Local().Format(timesheet.ClockLayout))
			}
			return nil
		}

		open, err := a.store.OpenSessions(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(open) == 0 {
			fmt.Println("Not clocked in")
			return nil
		}
		fmt.Printf("Clocked in on %d scope(s):\n", len(open))
		fmt.Print(tui.RenderOpenSessions(open))
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{inCmd, outCmd, statusCmd} {
		c.Flags().Uint("job", 0, "Job ID (omit for sessions without a job)")
	}
	inCmd.Flags().Bool("no-ui", false, "Clock in without the interactive timer")
}
