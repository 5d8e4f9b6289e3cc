package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var rateRegex = regexp.MustCompile(`^\$?\s*(\d+(?:[.,]\d+)?)\s*(?:/\s*(?:h|hr|hour))?$`)

// ParseRate parses an hourly rate typed by a person.
// Accepts formats like:
// - "20", "20.5", "18,50"
// - "$20", "$20/h", "20/hr", "20 / hour"
// Returns ok=false for empty input, anything non-numeric, and non-positive values.
func ParseRate(input string) (float64, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, false
	}

	matches := rateRegex.FindStringSubmatch(input)
	if len(matches) != 2 {
		return 0, false
	}

	rate, err := strconv.ParseFloat(strings.Replace(matches[1], ",", ".", 1), 64)
	if err != nil || rate <= 0 || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}

// MustParseRate is ParseRate with an error for CLI flags, where a typo should
// not silently fall back to the default rate.
func MustParseRate(input string) (float64, error) {
	rate, ok := ParseRate(input)
	if !ok {
		return 0, fmt.Errorf("invalid hourly rate %q. Use a positive number like 20, 18.50 or $20/h", input)
	}
	return rate, nil
}
