package timesheet

import (
	"fmt"
	"sort"
	"time"
)

// WeekRow is one job's completed hours for each day of a week, Monday first.
type WeekRow struct {
	Label string
	JobID *uint
	Hours [7]float64
	Total float64
}

// WeekGrid is a Monday-to-Sunday breakdown of completed hours by job.
type WeekGrid struct {
	Start     time.Time
	Rows      []WeekRow
	DayTotals [7]float64
	Total     float64
}

// WeekStart returns midnight on the Monday of t's calendar week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// BuildWeek groups the completed lines dated within the week starting at
// start by job and day. Open sessions and lines outside the week are skipped.
// Rows are ordered by job id with unscoped sessions last.
func BuildWeek(lines []Line, start time.Time) WeekGrid {
	g := WeekGrid{Start: start}
	days := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		days[start.AddDate(0, 0, i).Format(DateLayout)] = i
	}

	byKey := map[uint]*WeekRow{}
	for _, l := range lines {
		day, ok := days[l.Date]
		if !ok || !l.Amount.Valid {
			continue
		}
		key := uint(0)
		if l.JobID != nil {
			key = *l.JobID
		}
		row, ok := byKey[key]
		if !ok {
			row = &WeekRow{Label: rowLabel(l), JobID: l.JobID}
			byKey[key] = row
		}
		row.Hours[day] += l.Amount.Hours
		row.Total += l.Amount.Hours
		g.DayTotals[day] += l.Amount.Hours
		g.Total += l.Amount.Hours
	}

	keys := make([]uint, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == 0 || keys[j] == 0 {
			return keys[j] == 0 && keys[i] != 0
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		g.Rows = append(g.Rows, *byKey[k])
	}
	return g
}

func rowLabel(l Line) string {
	switch {
	case l.JobID == nil:
		return "No job"
	case l.JobName != nil:
		return fmt.Sprintf("#%d %s", *l.JobID, *l.JobName)
	default:
		return fmt.Sprintf("#%d", *l.JobID)
	}
}
