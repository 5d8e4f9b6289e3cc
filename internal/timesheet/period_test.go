package timesheet

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"", PeriodAll, false},
		{"all", PeriodAll, false},
		{" Today ", PeriodToday, false},
		{"WEEK", PeriodWeek, false},
		{"month", PeriodMonth, false},
		{"year", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePeriod(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWindowAt(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	tests := []struct {
		p    Period
		want Window
	}{
		{PeriodAll, Window{}},
		{PeriodToday, Window{Exact: "2024-03-15"}},
		{PeriodWeek, Window{From: "2024-03-08"}},
		{PeriodMonth, Window{From: "2024-02-15"}},
	}
	for _, tt := range tests {
		if got := tt.p.WindowAt(now); got != tt.want {
			t.Errorf("%s window = %+v, want %+v", tt.p, got, tt.want)
		}
	}
}

func TestWindowAt_MonthOverflowNormalises(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.Local)
	// February has no 31st, so one month back rolls forward into March.
	if got := PeriodMonth.WindowAt(now).From; got != "2024-03-02" {
		t.Errorf("month from = %q, want %q", got, "2024-03-02")
	}
}
