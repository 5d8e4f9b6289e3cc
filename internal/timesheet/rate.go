// Package timesheet holds the pure session math: rate resolution, duration
// and pay calculation, report periods and the report fold. Nothing here touches
// the store or the clock.
package timesheet

import "math"

// DefaultHourlyRate applies when a session has no job or its job carries no usable rate.
const DefaultHourlyRate = 18.0

// ResolveRate returns the job's rate when it is a positive finite number and
// fallback otherwise. jobRate is nil for unscoped sessions.
func ResolveRate(jobRate *float64, fallback float64) float64 {
	if jobRate != nil && validRate(*jobRate) {
		return *jobRate
	}
	if validRate(fallback) {
		return fallback
	}
	return DefaultHourlyRate
}

func validRate(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}
