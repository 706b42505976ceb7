package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OfficePolicy holds the attendance thresholds consumed by the lifecycle
// engine and the absence sweep. Clock fields are minutes from midnight in
// the office timezone.
type OfficePolicy struct {
	OfficeStart         int
	LateThreshold       int
	OfficeEnd           int
	BreakMinutes        int
	WorkingDaysPerMonth int
	Location            *time.Location
}

// DefaultOfficePolicy returns the reference policy: 09:00 office start,
// 09:30 late threshold, 17:00 office end, 30-minute break, 22 working
// days, UTC office clock.
func DefaultOfficePolicy() OfficePolicy {
	return OfficePolicy{
		OfficeStart:         9 * 60,
		LateThreshold:       9*60 + 30,
		OfficeEnd:           17 * 60,
		BreakMinutes:        30,
		WorkingDaysPerMonth: 22,
		Location:            time.UTC,
	}
}

// MinutesOfDay returns t's time of day, in office-local minutes from midnight.
func (p OfficePolicy) MinutesOfDay(t time.Time) int {
	local := t.In(p.Location)
	return local.Hour()*60 + local.Minute()
}

// DateOf truncates t to its office-local calendar day.
func (p OfficePolicy) DateOf(t time.Time) time.Time {
	local := t.In(p.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// parseClockMinutes parses "HH:MM" into minutes from midnight.
func parseClockMinutes(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}
