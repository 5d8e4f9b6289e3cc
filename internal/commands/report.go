package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/timesheet"
	"github.com/balkashynov/punch/internal/tui"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show hours and pay",
	Long: `Show sessions with hours and pay for a period.

Periods: all (default), today, week (last 7 days), month (last calendar month).

Examples:
  punch report --period week
  punch report --job 3 --json`,
	Args: cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		user, err := a.actingUser(ctx, cmd)
		if err != nil {
			return err
		}

		p, _ := cmd.Flags().GetString("period")
		period, err := timesheet.ParsePeriod(p)
		if err != nil {
			return err
		}
		rep, err := a.store.Report(ctx, user.ID, db.ReportFilter{Period: period, JobID: jobFlag(cmd)})
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(toReportJSON(rep))
		}
		fmt.Println(tui.RenderReport(rep, period))
		return nil
	}),
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show this calendar week's hours per job and day",
	Args:  cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		user, err := a.actingUser(ctx, cmd)
		if err != nil {
			return err
		}

		rep, err := a.store.Report(ctx, user.ID, db.ReportFilter{Period: timesheet.PeriodWeek})
		if err != nil {
			return err
		}
		grid := timesheet.BuildWeek(rep.Lines, timesheet.WeekStart(a.store.Now()))
		if len(grid.Rows) == 0 {
			fmt.Println("No completed sessions this week.")
			return nil
		}
		fmt.Println(tui.RenderWeek(grid))
		return nil
	}),
}

type reportRecordJSON struct {
	ID         uint    `json:"id"`
	JobID      *uint   `json:"job_id"`
	JobName    *string `json:"job_name"`
	Date       string  `json:"date"`
	ClockIn    *string `json:"clock_in"`
	ClockOut   *string `json:"clock_out"`
	HourlyRate float64 `json:"hourly_rate"`
	Hours      *string `json:"hours"`
	Salary     *string `json:"salary"`
}

type reportJSON struct {
	Records          []reportRecordJSON `json:"records"`
	TotalRecords     int                `json:"totalRecords"`
	CompletedRecords int                `json:"completedRecords"`
	TotalHours       string             `json:"totalHours"`
	TotalSalary      string             `json:"totalSalary"`
}

func toReportJSON(rep timesheet.Report) reportJSON {
	out := reportJSON{
		Records:          make([]reportRecordJSON, 0, len(rep.Lines)),
		TotalRecords:     rep.Totals.Records,
		CompletedRecords: rep.Totals.CompletedRecords,
		TotalHours:       timesheet.FormatHours(rep.Totals.Hours),
		TotalSalary:      timesheet.FormatMoney(rep.Totals.Salary),
	}
	for _, l := range rep.Lines {
		out.Records = append(out.Records, reportRecordJSON{
			ID:         l.ID,
			JobID:      l.JobID,
			JobName:    l.JobName,
			Date:       l.Date,
			ClockIn:    clockPtr(l.ClockIn),
			ClockOut:   clockPtr(l.ClockOut),
			HourlyRate: l.Rate,
			Hours:      l.Amount.HoursString(),
			Salary:     l.Amount.PayString(),
		})
	}
	return out
}

func clockPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Local().Format(timesheet.ClockLayout)
	return &s
}

func init() {
	reportCmd.Flags().String("period", "all", "Period: all, today, week, month")
	reportCmd.Flags().Uint("job", 0, "Only sessions on this job ID")
	reportCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}
