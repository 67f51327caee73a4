package temporal

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical reminder date format.
const DateLayout = "2006-01-02"

// TimeOfDay buckets the current hour into coarse periods.
type TimeOfDay string

const (
	EarlyMorning TimeOfDay = "early_morning"
	Morning      TimeOfDay = "morning"
	Midday       TimeOfDay = "midday"
	Afternoon    TimeOfDay = "afternoon"
	Evening      TimeOfDay = "evening"
	Night        TimeOfDay = "night"
	LateNight    TimeOfDay = "late_night"
)

// bucketBounds maps [from, to) hour ranges to a bucket and the suggested
// reminder time when nothing else is known. Hours outside every range are
// late night.
var bucketBounds = []struct {
	from, to  int
	bucket    TimeOfDay
	suggested string
}{
	{5, 9, EarlyMorning, "9:00 AM"},
	{9, 12, Morning, "10:00 AM"},
	{12, 14, Midday, "3:00 PM"},
	{14, 17, Afternoon, "4:00 PM"},
	{17, 20, Evening, "7:00 PM"},
	{20, 23, Night, "9:00 AM"},
}

// BucketFor returns the time-of-day bucket for a 24-hour clock hour.
func BucketFor(hour int) TimeOfDay {
	b, _ := bucketAndSuggestion(hour)
	return b
}

func bucketAndSuggestion(hour int) (TimeOfDay, string) {
	for _, b := range bucketBounds {
		if hour >= b.from && hour < b.to {
			return b.bucket, b.suggested
		}
	}
	return LateNight, FallbackTime
}

// Context is a snapshot of "now" plus the reference points derived from it.
// It is rebuilt for every request and never mutated after Build returns.
type Context struct {
	Now              time.Time
	Today            time.Time
	Tomorrow         time.Time
	Yesterday        time.Time
	DayAfterTomorrow time.Time

	// Weekdays maps a lower-cased weekday name to its date within the next
	// seven calendar days, today included.
	Weekdays map[string]time.Time

	// NextWeekdays maps "next <weekday>" to the first Monday–Friday
	// occurrence within the next fourteen days.
	NextWeekdays map[string]time.Time

	Bucket        TimeOfDay
	SuggestedTime string
}

// Build derives a Context from now.
func Build(now time.Time) Context {
	today := civilDate(now)
	bucket, suggested := bucketAndSuggestion(now.Hour())

	c := Context{
		Now:              now,
		Today:            today,
		Tomorrow:         today.AddDate(0, 0, 1),
		Yesterday:        today.AddDate(0, 0, -1),
		DayAfterTomorrow: today.AddDate(0, 0, 2),
		Weekdays:         make(map[string]time.Time, 7),
		NextWeekdays:     make(map[string]time.Time, 5),
		Bucket:           bucket,
		SuggestedTime:    suggested,
	}

	for i := 0; i < 14; i++ {
		d := today.AddDate(0, 0, i)
		name := strings.ToLower(d.Weekday().String())
		if i < 7 {
			c.Weekdays[name] = d
		}
		if isBusinessDay(d.Weekday()) {
			key := "next " + name
			if _, seen := c.NextWeekdays[key]; !seen {
				c.NextWeekdays[key] = d
			}
		}
	}

	return c
}

// WeekStart returns the Monday of the current week.
func (c Context) WeekStart() time.Time {
	offset := (int(c.Today.Weekday()) + 6) % 7
	return c.Today.AddDate(0, 0, -offset)
}

// PromptBlock renders the context as guidance for the model's own date
// arithmetic. The wording is free-form; only the facts matter.
func (c Context) PromptBlock() string {
	var b strings.Builder

	b.WriteString("CURRENT DATE & TIME CONTEXT (use this for date/time inference):\n\n")
	fmt.Fprintf(&b, "- Now: %s (%s)\n", c.Now.Format("Monday, January 2, 2006 15:04"), strings.ReplaceAll(string(c.Bucket), "_", " "))
	fmt.Fprintf(&b, "- Today: %s\n", c.Today.Format(DateLayout))
	fmt.Fprintf(&b, "- Tomorrow: %s\n", c.Tomorrow.Format(DateLayout))
	fmt.Fprintf(&b, "- Yesterday: %s\n", c.Yesterday.Format(DateLayout))
	fmt.Fprintf(&b, "- Day after tomorrow: %s\n", c.DayAfterTomorrow.Format(DateLayout))

	weekStart := c.WeekStart()
	nextMonth := time.Date(c.Today.Year(), c.Today.Month()+1, 1, 0, 0, 0, 0, c.Today.Location())
	fmt.Fprintf(&b, "- This week starts %s, next week starts %s\n",
		weekStart.Format("January 02"), weekStart.AddDate(0, 0, 7).Format("January 02"))
	fmt.Fprintf(&b, "- Current month: %s, next month: %s\n",
		strings.ToLower(c.Today.Month().String()), strings.ToLower(nextMonth.Month().String()))

	b.WriteString("\nDay name mappings (next 7 days):\n")
	for i := 1; i < 7; i++ {
		d := c.Today.AddDate(0, 0, i)
		fmt.Fprintf(&b, "- %s (%s): %s\n", strings.ToLower(d.Weekday().String()), d.Format("January 02"), d.Format(DateLayout))
	}

	b.WriteString("\nWeekday mappings (for appointments/business):\n")
	for i := 0; i < 14; i++ {
		d := c.Today.AddDate(0, 0, i)
		key := "next " + strings.ToLower(d.Weekday().String())
		if got, ok := c.NextWeekdays[key]; ok && got.Equal(d) {
			fmt.Fprintf(&b, "- %s: %s\n", key, d.Format(DateLayout))
		}
	}

	fmt.Fprintf(&b, "\nSuggested time when none is given: %s\n", c.SuggestedTime)

	b.WriteString(`
INFERENCE RULES:
1. "medicine" without time -> 9:00 AM (morning) or 8:00 PM (if "evening" mentioned)
2. "appointment" without date -> next weekday (Monday-Friday)
`)
	fmt.Fprintf(&b, "3. \"tomorrow\" -> %s\n", c.Tomorrow.Format(DateLayout))
	fmt.Fprintf(&b, "4. \"today\" -> %s\n", c.Today.Format(DateLayout))
	b.WriteString(`5. Weekday names -> next occurrence of that day
6. Meal names -> breakfast: 8:00 AM, lunch: 12:00 PM, dinner: 7:00 PM
7. Time of day words -> morning: 9:00 AM, afternoon: 3:00 PM, evening: 7:00 PM, night: 8:00 PM
8. No date/time specified -> use smart defaults based on task type and current time
`)

	return b.String()
}

// civilDate truncates t to midnight in its own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isBusinessDay(wd time.Weekday) bool {
	return wd != time.Saturday && wd != time.Sunday
}
