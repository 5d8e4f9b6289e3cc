package timesheet

import (
	"sort"
	"time"
)

// Entry is one session as the report sees it: the record plus the joined job,
// if any. JobRate is the job's current rate, read at report time.
type Entry struct {
	ID       uint
	UserID   uint
	JobID    *uint
	JobName  *string
	JobRate  *float64
	Date     string
	ClockIn  *time.Time
	ClockOut *time.Time
}

// Line is a report row with its derived amount.
type Line struct {
	Entry
	Rate   float64
	Amount Amount
}

// Totals summarises a report. Hours and Salary are summed at full precision
// over completed sessions only.
type Totals struct {
	Records          int
	CompletedRecords int
	Hours            float64
	Salary           float64
}

// Report is the result of folding a set of entries.
type Report struct {
	Lines  []Line
	Totals Totals
}

// Build sorts entries newest first (date, then id) and derives every line and
// the totals. fallbackRate applies to entries without a usable job rate.
func Build(entries []Entry, fallbackRate float64) Report {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})

	rep := Report{Lines: make([]Line, 0, len(sorted))}
	for _, e := range sorted {
		rate := ResolveRate(e.JobRate, fallbackRate)
		amt := Compute(e.ClockIn, e.ClockOut, rate)
		rep.Lines = append(rep.Lines, Line{Entry: e, Rate: rate, Amount: amt})

		rep.Totals.Records++
		if amt.Valid {
			rep.Totals.CompletedRecords++
			rep.Totals.Hours += amt.Hours
			rep.Totals.Salary += amt.Pay
		}
	}
	return rep
}
