package timesheet

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format stored on clock records.
const DateLayout = "2006-01-02"

// ClockLayout is how clock-in/out times are shown to clients.
const ClockLayout = "15:04:05"

// Period is a report window.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Periods lists the accepted report windows.
var Periods = []Period{PeriodAll, PeriodToday, PeriodWeek, PeriodMonth}

// ParsePeriod normalises a period name. An empty string means all.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodToday, PeriodWeek, PeriodMonth:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q (use all, today, week or month)", s)
}

// Window is the date filter a period resolves to. From is an inclusive lower
// bound; Exact restricts to a single date. Both empty means unbounded.
type Window struct {
	From  string
	Exact string
}

// WindowAt resolves the period against the given local time.
func (p Period) WindowAt(now time.Time) Window {
	switch p {
	case PeriodToday:
		return Window{Exact: DateOf(now)}
	case PeriodWeek:
		return Window{From: DateOf(now.AddDate(0, 0, -7))}
	case PeriodMonth:
		return Window{From: DateOf(now.AddDate(0, -1, 0))}
	}
	return Window{}
}

// DateOf returns the local calendar date of t.
func DateOf(t time.Time) string {
	return t.Local().Format(DateLayout)
}
