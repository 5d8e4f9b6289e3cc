package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/timesheet"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMoney)).Bold(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func clockOr(t *time.Time, empty string) string {
	if t == nil {
		return empty
	}
	return t.Local().Format(timesheet.ClockLayout)
}

// RenderReport draws a report as a table followed by its totals.
func RenderReport(rep timesheet.Report, period timesheet.Period) string {
	if len(rep.Lines) == 0 {
		return mutedStyle.Render(fmt.Sprintf("No sessions for period %q.", period))
	}

	t := newTable("ID", "DATE", "JOB", "IN", "OUT", "RATE", "HOURS", "PAY")
	for _, l := range rep.Lines {
		job := "-"
		if l.JobName != nil {
			job = *l.JobName
		}
		t.Row(
			fmt.Sprint(l.ID),
			l.Date,
			truncate(job, 24),
			clockOr(l.ClockIn, "-"),
			clockOr(l.ClockOut, "open"),
			timesheet.FormatMoney(l.Rate),
			orDash(l.Amount.HoursString()),
			orDash(l.Amount.PayString()),
		)
	}

	totals := fmt.Sprintf("%d sessions (%d completed) · %s hours · $%s",
		rep.Totals.Records,
		rep.Totals.CompletedRecords,
		timesheet.FormatHours(rep.Totals.Hours),
		timesheet.FormatMoney(rep.Totals.Salary),
	)
	return t.String() + "\n" + totalStyle.Render(totals)
}

// RenderJobs draws the user's jobs.
func RenderJobs(jobs []models.Job) string {
	if len(jobs) == 0 {
		return mutedStyle.Render("No jobs yet. Use 'punch jobs add' to create one.")
	}
	t := newTable("ID", "NAME", "RATE", "DESCRIPTION", "CREATED")
	for _, j := range jobs {
		t.Row(
			fmt.Sprint(j.ID),
			truncate(j.Name, 30),
			"$"+timesheet.FormatMoney(j.HourlyRate)+"/h",
			truncate(orDash(j.Description), 40),
			j.CreatedAt.Local().Format(timesheet.DateLayout),
		)
	}
	return t.String()
}

// RenderUsers draws the admin user list.
func RenderUsers(users []db.UserSummary) string {
	if len(users) == 0 {
		return mutedStyle.Render("No users.")
	}
	t := newTable("ID", "USERNAME", "EMAIL", "ADMIN", "RECORDS", "COMPLETED", "JOINED")
	for _, u := range users {
		admin := ""
		if u.IsAdmin {
			admin = "yes"
		}
		t.Row(
			fmt.Sprint(u.ID),
			u.Username,
			u.Email,
			admin,
			fmt.Sprint(u.TotalRecords),
			fmt.Sprint(u.CompletedRecords),
			u.CreatedAt.Local().Format(timesheet.DateLayout),
		)
	}
	return t.String()
}

// RenderStats draws system-wide usage numbers.
func RenderStats(st *db.UsageStats) string {
	rows := [][2]string{
		{"Users", fmt.Sprint(st.Users)},
		{"Admins", fmt.Sprint(st.Admins)},
		{"Jobs", fmt.Sprint(st.Jobs)},
		{"Sessions", fmt.Sprint(st.Records)},
		{"Completed", fmt.Sprint(st.CompletedRecords)},
		{"Open", fmt.Sprint(st.OpenRecords)},
		{"Hours", timesheet.FormatHours(st.TotalHours)},
		{"Salary", "$" + timesheet.FormatMoney(st.TotalSalary)},
	}
	t := newTable("METRIC", "VALUE")
	for _, r := range rows {
		t.Row(r[0], r[1])
	}
	return t.String()
}

// RenderOpenSessions lists today's open sessions in one line each.
func RenderOpenSessions(recs []models.ClockRecord) string {
	var b strings.Builder
	for _, r := range recs {
		job := "no job"
		if r.Job != nil {
			job = r.Job.Name
		}
		fmt.Fprintf(&b, "  ⏱️  %s since %s\n", job, clockOr(&r.ClockIn, "-"))
	}
	return b.String()
}

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderWeek draws a week grid with a totals row.
func RenderWeek(g timesheet.WeekGrid) string {
	headers := append([]string{"JOB"}, weekdayNames[:]...)
	headers = append(headers, "TOTAL")
	t := newTable(headers...)

	hours := func(h float64) string {
		if h == 0 {
			return "-"
		}
		return timesheet.FormatHours(h)
	}
	for _, r := range g.Rows {
		row := []string{truncate(r.Label, 30)}
		for _, h := range r.Hours {
			row = append(row, hours(h))
		}
		t.Row(append(row, timesheet.FormatHours(r.Total))...)
	}
	totals := []string{"Total"}
	for _, h := range g.DayTotals {
		totals = append(totals, hours(h))
	}
	t.Row(append(totals, timesheet.FormatHours(g.Total))...)

	end := g.Start.AddDate(0, 0, 6)
	return t.String() + "\n" + mutedStyle.Render(fmt.Sprintf("Week of %s to %s", g.Start.Format("Jan 2"), end.Format("Jan 2, 2006")))
}
