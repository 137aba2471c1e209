package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GetBarsParam is the request for a ticker's daily history.
type GetBarsParam struct {
	Ticker string
	Range  string
}

// earliestHistory bounds "max" for providers that need an explicit start.
var earliestHistory = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// RangeStart converts a Yahoo style range ("6mo", "1y", "ytd", "max") to a start time.
func RangeStart(now time.Time, rng string) (time.Time, error) {
	rng = strings.ToLower(strings.TrimSpace(rng))
	switch rng {
	case "", "max":
		return earliestHistory, nil
	case "ytd":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil
	}

	unitStart := strings.IndexFunc(rng, func(r rune) bool { return r < '0' || r > '9' })
	if unitStart <= 0 {
		return time.Time{}, fmt.Errorf("invalid range %q", rng)
	}
	n, err := strconv.Atoi(rng[:unitStart])
	if err != nil || n <= 0 {
		return time.Time{}, fmt.Errorf("invalid range %q", rng)
	}

	switch rng[unitStart:] {
	case "d":
		return now.AddDate(0, 0, -n), nil
	case "wk":
		return now.AddDate(0, 0, -7*n), nil
	case "mo":
		return now.AddDate(0, -n, 0), nil
	case "y":
		return now.AddDate(-n, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("invalid range unit in %q", rng)
	}
}
