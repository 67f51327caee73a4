package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	integerRunRe = regexp.MustCompile(`\d+`)
)

// weekdayNames is ordered Monday first; the first name found in the input wins.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// dateLayouts are tried in order. Layouts without a year parse to year 0
// and are moved to the current year.
var dateLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2006-1-2", true},
	{"1/2/2006", true},
	{"2/1/2006", true},
	{"1-2-2006", true},
	{"2-1-2006", true},
	{"2006/1/2", true},
	{"January 2, 2006", true},
	{"January 2 2006", true},
	{"2 January 2006", true},
	{"1/2", false},
	{"2/1", false},
}

// NormalizeDate maps an arbitrary string to a YYYY-MM-DD date. It never
// fails: anything it cannot interpret resolves to today.
func NormalizeDate(raw string, now time.Time) string {
	today := civilDate(now)
	s := strings.TrimSpace(raw)
	if isNullLike(s) {
		return today.Format(DateLayout)
	}

	if isoPrefixRe.MatchString(s) {
		if t, err := time.Parse(DateLayout, s); err == nil && t.Year() >= 1 {
			return t.Format(DateLayout)
		}
	}

	lower := strings.ToLower(s)
	switch {
	case lower == "today":
		return today.Format(DateLayout)
	case lower == "tomorrow":
		return today.AddDate(0, 0, 1).Format(DateLayout)
	case lower == "yesterday":
		return today.AddDate(0, 0, -1).Format(DateLayout)
	case strings.Contains(lower, "day after tomorrow"):
		return today.AddDate(0, 0, 2).Format(DateLayout)
	}

	for _, wd := range weekdayNames {
		if strings.Contains(lower, wd.name) {
			return NextWeekday(today, wd.day).Format(DateLayout)
		}
	}

	if strings.Contains(lower, "next week") {
		return NextWeekday(today, time.Monday).Format(DateLayout)
	}
	// "this week" resolves to tomorrow, not the start of the week.
	if strings.Contains(lower, "this week") {
		return today.AddDate(0, 0, 1).Format(DateLayout)
	}

	for _, l := range dateLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		if !l.hasYear {
			d, ok := makeDate(now.Year(), int(t.Month()), t.Day())
			if !ok {
				continue
			}
			t = d
		}
		if t.Year() < 1 || t.Year() > 9999 {
			continue
		}
		return t.Format(DateLayout)
	}

	if d, ok := dateFromIntegers(s, now); ok {
		return d.Format(DateLayout)
	}

	return today.Format(DateLayout)
}

// NextWeekday returns the first date strictly after from that falls on wd.
func NextWeekday(from time.Time, wd time.Weekday) time.Time {
	ahead := (int(wd) - int(from.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return from.AddDate(0, 0, ahead)
}

// dateFromIntegers reads month/day (two numbers) or month/day/year (three
// or more) from the integer runs in s.
func dateFromIntegers(s string, now time.Time) (time.Time, bool) {
	runs := integerRunRe.FindAllString(s, -1)
	if len(runs) < 2 {
		return time.Time{}, false
	}

	nums := make([]int, 0, 3)
	for _, r := range runs[:min(len(runs), 3)] {
		n, err := strconv.Atoi(r)
		if err != nil {
			return time.Time{}, false
		}
		nums = append(nums, n)
	}

	month, day := nums[0], nums[1]
	year := now.Year()
	if len(nums) == 3 {
		year = nums[2]
		if year < 100 {
			year += 2000
		}
	}
	if month > 12 || day > 31 {
		return time.Time{}, false
	}
	return makeDate(year, month, day)
}

// makeDate builds a calendar date, rejecting values time.Date would
// silently roll over.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func isNullLike(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "none", "undefined":
		return true
	}
	return false
}
