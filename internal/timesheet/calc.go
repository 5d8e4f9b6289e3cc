package timesheet

import (
	"fmt"
	"time"
)

// Amount is the derived time and money for one session. Valid is false when
// the session has no clock-out (or no clock-in), which is different from a
// zero-length session.
type Amount struct {
	Hours float64
	Pay   float64
	Valid bool
}

// Compute derives hours and pay for a session. Durations are not clamped:
// a clock-out earlier than the clock-in yields negative hours.
func Compute(clockIn, clockOut *time.Time, rate float64) Amount {
	if clockIn == nil || clockOut == nil || clockIn.IsZero() || clockOut.IsZero() {
		return Amount{}
	}
	hours := clockOut.Sub(*clockIn).Hours()
	return Amount{Hours: hours, Pay: hours * rate, Valid: true}
}

// FormatHours renders hours with two decimals.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

// FormatMoney renders an amount of money with two decimals.
func FormatMoney(m float64) string {
	return fmt.Sprintf("%.2f", m)
}

// HoursString returns the formatted hours or nil when the amount is not applicable.
func (a Amount) HoursString() *string {
	if !a.Valid {
		return nil
	}
	s := FormatHours(a.Hours)
	return &s
}

// PayString returns the formatted pay or nil when the amount is not applicable.
func (a Amount) PayString() *string {
	if !a.Valid {
		return nil
	}
	s := FormatMoney(a.Pay)
	return &s
}
