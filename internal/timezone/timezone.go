package timezone

import (
	"fmt"
	"strings"
	"time"
)

// IRST is Iran Standard Time, UTC+03:30. Every fixture route is domestic.
var IRST = time.FixedZone("IRST", 3*60*60+30*60)

// GetLocationByName resolves a configured zone name. Unknown names fall
// back to IRST.
func GetLocationByName(name string) *time.Location {
	switch strings.ToUpper(name) {
	case "", "IRST", "UTC+3:30", "UTC+03:30":
		return IRST
	case "UTC", "Z":
		return time.UTC
	default:
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		return IRST
	}
}

// ParseClock parses an HH:MM time of day into minutes past midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Resolve returns the instant that is days calendar days after now's date,
// at the given HH:MM clock time in loc.
func Resolve(now time.Time, days int, clock string, loc *time.Location) (time.Time, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+days,
		minutes/60, minutes%60, 0, 0, loc), nil
}

// MinuteOfDay is t's local time of day in loc, in minutes.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}
