package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FallbackTime is returned whenever a time cannot be interpreted.
const FallbackTime = "9:00 AM"

var (
	meridiemPrefixRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm|a\.?m\.?|p\.?m\.?)`)
	bareClockRe      = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	meridiemAnyRe    = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.?m\.?|p\.?m\.?)`)
	clockAnyRe       = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	loneHourRe       = regexp.MustCompile(`\b(\d{1,2})\b`)
)

// namedTimes is checked in order; the first keyword contained in the input
// wins. "noon" precedes "afternoon", so "afternoon" resolves to noon.
var namedTimes = []struct {
	word string
	time string
}{
	{"midnight", "12:00 AM"},
	{"noon", "12:00 PM"},
	{"breakfast", "8:00 AM"},
	{"lunch", "12:30 PM"},
	{"dinner", "7:00 PM"},
	{"bedtime", "10:00 PM"},
	{"morning", "9:00 AM"},
	{"afternoon", "3:00 PM"},
	{"evening", "7:00 PM"},
	{"night", "8:00 PM"},
}

// NormalizeTime maps an arbitrary string to a "H:MM AM|PM" time. It never
// fails: anything it cannot interpret resolves to FallbackTime.
func NormalizeTime(raw string, _ time.Time) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if isNullLike(s) {
		return FallbackTime
	}

	if m := meridiemPrefixRe.FindStringSubmatch(s); m != nil {
		if out, ok := fromMeridiem(m[1], m[2], m[3]); ok {
			return out
		}
	}

	if m := bareClockRe.FindStringSubmatch(s); m != nil {
		if out, ok := from24Hour(m[1], m[2]); ok {
			return out
		}
	}

	for _, nt := range namedTimes {
		if strings.Contains(s, nt.word) {
			return nt.time
		}
	}

	if m := meridiemAnyRe.FindStringSubmatch(s); m != nil {
		if out, ok := fromMeridiem(m[1], m[2], m[3]); ok {
			return out
		}
	}

	if m := clockAnyRe.FindStringSubmatch(s); m != nil {
		if out, ok := from24Hour(m[1], m[2]); ok {
			return out
		}
	}

	if m := loneHourRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		switch {
		case hour <= 23:
			return format12Hour(hour, 0)
		case hour >= 1 && hour <= 12:
			// Unreachable: every 1-12 value is taken by the 24-hour case.
			if hour < 8 {
				return fmt.Sprintf("%d:00 PM", hour)
			}
			return fmt.Sprintf("%d:00 AM", hour)
		}
	}

	return FallbackTime
}

// fromMeridiem builds a canonical time from captured hour, optional minute,
// and an am/pm marker in any dotted form.
func fromMeridiem(hourStr, minuteStr, marker string) (string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", false
	}
	minute := 0
	if minuteStr != "" {
		if minute, err = strconv.Atoi(minuteStr); err != nil {
			return "", false
		}
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return "", false
	}
	period := "PM"
	if strings.HasPrefix(marker, "a") {
		period = "AM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, period), true
}

func from24Hour(hourStr, minuteStr string) (string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", false
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return "", false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}
	return format12Hour(hour, minute), true
}

func format12Hour(hour, minute int) string {
	switch {
	case hour == 0:
		return fmt.Sprintf("12:%02d AM", minute)
	case hour < 12:
		return fmt.Sprintf("%d:%02d AM", hour, minute)
	case hour == 12:
		return fmt.Sprintf("12:%02d PM", minute)
	default:
		return fmt.Sprintf("%d:%02d PM", hour-12, minute)
	}
}

// ClockMinutes converts an "H:MM AM|PM" time to minutes after midnight.
func ClockMinutes(s string) (int, bool) {
	m := meridiemPrefixRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, false
	}
	hour %= 12
	if !strings.HasPrefix(m[3], "a") {
		hour += 12
	}
	return hour*60 + minute, true
}
