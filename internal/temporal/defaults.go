package temporal

import (
	"strings"
	"time"
)

// Keyword sets shared by the date and time rule tables.
var (
	medicationWords  = []string{"medicine", "medication", "pill", "vitamin", "drug", "treatment", "dose"}
	appointmentWords = []string{"appointment", "meeting", "doctor", "dentist", "visit", "consultation"}
	workWords        = []string{"work", "office", "meeting", "call", "email", "project", "deadline"}
	mealWords        = []string{"breakfast", "lunch", "dinner", "meal", "eat"}
	exerciseWords    = []string{"workout", "exercise", "gym", "walk", "run", "jog", "fitness"}
	errandWords      = []string{"shop", "buy", "store", "grocery", "errand", "pickup", "get"}
)

// dateRule resolves a default date for titles containing any of its keywords.
type dateRule struct {
	name     string
	keywords []string
	resolve  func(title string, now time.Time) time.Time
}

// timeRule resolves a default time for titles containing any of its keywords.
type timeRule struct {
	name     string
	keywords []string
	resolve  func(title string, now time.Time) string
}

// dateRules is evaluated top to bottom; the first rule whose keywords
// match wins.
var dateRules = []dateRule{
	{
		name:     "medication",
		keywords: medicationWords,
		resolve: func(title string, now time.Time) time.Time {
			if now.Hour() < 18 && containsAny(title, "tonight", "evening") {
				return civilDate(now)
			}
			return civilDate(now).AddDate(0, 0, 1)
		},
	},
	{name: "appointment", keywords: appointmentWords, resolve: nextBusinessDay},
	{name: "work", keywords: workWords, resolve: nextBusinessDay},
	{
		name:     "meal",
		keywords: mealWords,
		resolve: func(title string, now time.Time) time.Time {
			h := now.Hour()
			if (strings.Contains(title, "breakfast") && h >= 10) ||
				(strings.Contains(title, "lunch") && h >= 14) ||
				(strings.Contains(title, "dinner") && h >= 21) {
				return civilDate(now).AddDate(0, 0, 1)
			}
			return civilDate(now)
		},
	},
	{name: "exercise", keywords: exerciseWords, resolve: rollAfterHour(20)},
	{name: "errand", keywords: errandWords, resolve: rollAfterHour(19)},
}

var timeRules = []timeRule{
	{
		name:     "medication",
		keywords: []string{"medicine", "medication", "pill", "vitamin"},
		resolve: func(title string, _ time.Time) string {
			switch {
			case containsAny(title, "morning", "am"):
				return "8:00 AM"
			case containsAny(title, "evening", "night", "pm"):
				return "8:00 PM"
			case strings.Contains(title, "afternoon"):
				return "3:00 PM"
			case strings.Contains(title, "bedtime"):
				return "10:00 PM"
			default:
				return "9:00 AM"
			}
		},
	},
	{name: "breakfast", keywords: []string{"breakfast"}, resolve: fixedTime("8:00 AM")},
	{name: "lunch", keywords: []string{"lunch"}, resolve: fixedTime("12:30 PM")},
	{name: "dinner", keywords: []string{"dinner"}, resolve: fixedTime("7:00 PM")},
	{
		name:     "snack",
		keywords: []string{"snack"},
		resolve:  beforeNoon("10:30 AM", "3:30 PM"),
	},
	{
		name:     "appointment",
		keywords: []string{"appointment", "meeting", "doctor", "dentist", "consultation"},
		resolve: func(title string, _ time.Time) string {
			if strings.Contains(title, "afternoon") {
				return "2:00 PM"
			}
			return "10:00 AM"
		},
	},
	{name: "work", keywords: []string{"work", "office", "call", "email", "meeting"}, resolve: fixedTime("10:00 AM")},
	{
		name:     "exercise",
		keywords: []string{"workout", "exercise", "gym", "walk", "run", "jog"},
		resolve: func(title string, _ time.Time) string {
			switch {
			case strings.Contains(title, "morning"):
				return "7:00 AM"
			case strings.Contains(title, "evening"):
				return "6:00 PM"
			default:
				return "7:00 AM"
			}
		},
	},
	{name: "errand", keywords: []string{"shop", "buy", "store", "grocery", "errand", "pickup"}, resolve: fixedTime("2:00 PM")},
	{
		name:     "study",
		keywords: []string{"study", "homework", "read", "learn", "practice"},
		resolve:  beforeNoon("10:00 AM", "4:00 PM"),
	},
	{name: "sleep", keywords: []string{"sleep", "bed", "bedtime", "rest"}, resolve: fixedTime("10:00 PM")},
	{name: "wake", keywords: []string{"wake", "alarm", "get up"}, resolve: fixedTime("7:00 AM")},
}

// fallbackTimes mirrors the time-of-day buckets used by the context builder.
var fallbackTimes = map[TimeOfDay]string{
	EarlyMorning: "9:00 AM",
	Morning:      "10:00 AM",
	Midday:       "3:00 PM",
	Afternoon:    "4:00 PM",
	Evening:      "7:00 PM",
}

// DefaultDate guesses a YYYY-MM-DD date for a reminder whose date is
// missing, based on the kind of task the title describes.
func DefaultDate(title string, now time.Time) string {
	lower := strings.ToLower(title)
	for _, r := range dateRules {
		if containsAny(lower, r.keywords...) {
			return r.resolve(lower, now).Format(DateLayout)
		}
	}
	if now.Hour() >= 18 {
		return civilDate(now).AddDate(0, 0, 1).Format(DateLayout)
	}
	return civilDate(now).Format(DateLayout)
}

// DefaultTime guesses a "H:MM AM|PM" time for a reminder whose time is
// missing.
func DefaultTime(title string, now time.Time) string {
	lower := strings.ToLower(title)
	for _, r := range timeRules {
		if containsAny(lower, r.keywords...) {
			return r.resolve(lower, now)
		}
	}
	if t, ok := fallbackTimes[BucketFor(now.Hour())]; ok {
		return t
	}
	return FallbackTime
}

// MatchedDateRule reports which date rule a title falls under, or
// "fallback" when none matches.
func MatchedDateRule(title string) string {
	lower := strings.ToLower(title)
	for _, r := range dateRules {
		if containsAny(lower, r.keywords...) {
			return r.name
		}
	}
	return "fallback"
}

// MatchedTimeRule reports which time rule a title falls under, or
// "fallback" when none matches.
func MatchedTimeRule(title string) string {
	lower := strings.ToLower(title)
	for _, r := range timeRules {
		if containsAny(lower, r.keywords...) {
			return r.name
		}
	}
	return "fallback"
}

// nextBusinessDay starts from tomorrow and skips Saturday and Sunday,
// giving up after a week.
func nextBusinessDay(_ string, now time.Time) time.Time {
	today := civilDate(now)
	ahead := 1
	d := today.AddDate(0, 0, ahead)
	for !isBusinessDay(d.Weekday()) {
		ahead++
		d = today.AddDate(0, 0, ahead)
		if ahead > 7 {
			break
		}
	}
	return d
}

func rollAfterHour(cutoff int) func(string, time.Time) time.Time {
	return func(_ string, now time.Time) time.Time {
		if now.Hour() >= cutoff {
			return civilDate(now).AddDate(0, 0, 1)
		}
		return civilDate(now)
	}
}

func fixedTime(t string) func(string, time.Time) string {
	return func(string, time.Time) string { return t }
}

func beforeNoon(morning, later string) func(string, time.Time) string {
	return func(_ string, now time.Time) string {
		if now.Hour() < 12 {
			return morning
		}
		return later
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
