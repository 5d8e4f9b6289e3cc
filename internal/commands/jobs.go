package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/parser"
	"github.com/balkashynov/punch/internal/timesheet"
	"github.com/balkashynov/punch/internal/tui"
)

var jobsCmd = &cobra.Command{
	Use:     "jobs",
	Aliases: []string{"job"},
	Short:   "List your jobs",
	Args:    cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		user, err := a.actingUser(ctx, cmd)
		if err != nil {
			return err
		}
		jobs, err := a.store.ListJobs(ctx, user.ID)
		if err != nil {
			return err
		}
		fmt.Println(tui.RenderJobs(jobs))
		return nil
	}),
}

var jobsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a job",
	Long: `Add a job with an hourly rate. Without a name (or without --no-ui) an interactive form opens.

Examples:
  punch jobs add                                # Interactive form
  punch jobs add "Cafe" --rate 20 --no-ui
  punch jobs add "Library" --rate '$18.50/h' --note "weekends" --no-ui`,
	Args: cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		user, err := a.actingUser(ctx, cmd)
		if err != nil {
			return err
		}

		rateFlag, _ := cmd.Flags().GetString("rate")
		note, _ := cmd.Flags().GetString("note")
		noUI, _ := cmd.Flags().GetBool("no-ui")

		if !noUI || len(args) == 0 {
			prefilled := map[string]string{"rate": rateFlag, "description": note}
			if len(args) == 1 {
				prefilled["name"] = args[0]
			}
			return tui.RunJobFormTUI(tui.NewJobFormModel(ctx, a.store, user.ID, prefilled))
		}

		req := db.CreateJobRequest{Name: args[0]}
		if rateFlag != "" {
			rate, err := parser.MustParseRate(rateFlag)
			if err != nil {
				return err
			}
			req.HourlyRate = &rate
		}
		if note != "" {
			req.Description = &note
		}
		job, err := a.store.CreateJob(ctx, user.ID, req)
		if err != nil {
			return err
		}
		fmt.Printf("Created job #%d: %s ($%s/h)\n", job.ID, job.Name, timesheet.FormatMoney(job.HourlyRate))
		return nil
	}),
}

var jobsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a job",
	Long: `Edit a job's name, rate or description. Rate changes apply to past sessions in reports too.

Examples:
  punch jobs edit 3                     # Interactive form
  punch jobs edit 3 --rate 22 --no-ui`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		user, err := a.actingUser(ctx, cmd)
		if err != nil {
			return err
		}
		jobID, err := parseJobID(args[0])
		if err != nil {
			return err
		}
		job, err := a.store.GetJob(ctx, user.ID, jobID)
		if err != nil {
			return err
		}

		if noUI, _ := cmd.Flags().GetBool("no-ui"); !noUI {
			return tui.RunJobFormTUI(tui.NewEditJobFormModel(ctx, a.store, user.ID, job))
		}

		var req db.UpdateJobRequest
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			req.Name = &name
		}
		if cmd.Flags().Changed("note") {
			note, _ := cmd.Flags().GetString("note")
			req.Description = &note
		}
		if cmd.Flags().Changed("rate") {
			rateFlag, _ := cmd.Flags().GetString("rate")
			rate, err := parser.MustParseRate(rateFlag)
			if err != nil {
				return err
			}
			req.HourlyRate = &rate
		}
		job, err = a.store.UpdateJob(ctx, user.ID, jobID, req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated job #%d: %s ($%s/h)\n", job.ID, job.Name, timesheet.FormatMoney(job.HourlyRate))
		return nil
	}),
}

var jobsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a job that has no sessions",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		user, err := a.actingUser(ctx, cmd)
		if err != nil {
			return err
		}
		jobID, err := parseJobID(args[0])
		if err != nil {
			return err
		}
		if err := a.store.DeleteJob(ctx, user.ID, jobID); err != nil {
			return err
		}
		fmt.Printf("Deleted job #%d\n", jobID)
		return nil
	}),
}

func parseJobID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid job ID '%s'", s)
	}
	return uint(id), nil
}

func init() {
	jobsAddCmd.Flags().String("rate", "", "Hourly rate, e.g. 20, 18.50 or $20/h (default $DEFAULT_HOURLY_RATE)")
	jobsAddCmd.Flags().String("note", "", "Description")
	jobsAddCmd.Flags().Bool("no-ui", false, "Skip the interactive form")

	jobsEditCmd.Flags().String("name", "", "New name")
	jobsEditCmd.Flags().String("rate", "", "New hourly rate")
	jobsEditCmd.Flags().String("note", "", "New description (empty clears it)")
	jobsEditCmd.Flags().Bool("no-ui", false, "Apply flags without the interactive form")

	jobsCmd.AddCommand(jobsAddCmd)
	jobsCmd.AddCommand(jobsEditCmd)
	jobsCmd.AddCommand(jobsRmCmd)
}
