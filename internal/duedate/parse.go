// Package duedate turns short human input such as "tomorrow", "in 3 days",
// "fri" or "15/10/2025" into a calendar day.
package duedate

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrParsing = errors.New("unrecognized date")

// Parse resolves s relative to now. The result is midnight of the chosen
// day in now's location.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	today := startOfDay(now)

	switch s {
	case "today", "tod", "now":
		return today, nil
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), nil
	case "yesterday", "yday":
		return today.AddDate(0, 0, -1), nil
	case "":
		return time.Time{}, ErrParsing
	}

	if wd, err := parseWeekday(s); err == nil {
		return nextWeekday(today, wd), nil
	}
	if days, err := parseDayOffset(s); err == nil {
		return today.AddDate(0, 0, days), nil
	}
	if t, err := parseAbsolute(s, now.Location()); err == nil {
		return t, nil
	}

	return time.Time{}, ErrParsing
}

// Format renders a due date the way Parse accepts it back
func Format(t time.Time) string {
	return t.Format(time.DateOnly)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// nextWeekday is the first day after today falling on wd
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	ahead := (int(wd) - int(today.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return today.AddDate(0, 0, ahead)
}

var weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func parseWeekday(s string) (time.Weekday, error) {
	if len(s) < 3 {
		return 0, ErrParsing
	}
	for i, name := range weekdays {
		if strings.HasPrefix(name, s) {
			return time.Weekday(i), nil
		}
	}
	return 0, ErrParsing
}

type multiplier struct {
	key   string
	value int
}

var multipliers = []multiplier{
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

// parseDayOffset handles "3", "+3", "-1", "in 3 days", "2w", "1 day ago"
func parseDayOffset(s string) (int, error) {
	sign := 1
	if rest, ok := strings.CutSuffix(s, "ago"); ok {
		sign = -1
		s = strings.TrimSpace(rest)
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "in "))

	// parse quantity
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || i == 0 && (s[i] == '+' || s[i] == '-')) {
		i++
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s[i:])

	unit := 1
	if len(s) > 0 {
		unit = 0
		for _, m := range multipliers {
			if strings.HasPrefix(m.key, s) || s == strings.TrimSuffix(m.key, "s") {
				unit = m.value
				break
			}
		}
		if unit == 0 {
			return 0, errors.New("unexpected postfix")
		}
	}

	return sign * n * unit, nil
}

var absoluteFormats = []string{
	time.DateOnly,
	"_2/01/06",
	"_2/01/2006",
	"_2-01-2006",
	"_2 jan 2006",
	"_2 january 2006",
	"jan _2 2006",
	"january _2 2006",
}

func parseAbsolute(s string, loc *time.Location) (time.Time, error) {
	// time.Parse wants month names capitalized
	s = capitalizeMonth(s)
	for _, layout := range absoluteFormats {
		t, err := time.ParseInLocation(capitalizeMonth(layout), s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("format not found")
}

func capitalizeMonth(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if f[0] >= 'a' && f[0] <= 'z' {
			fields[i] = strings.ToUpper(f[:1]) + f[1:]
		}
	}
	return strings.Join(fields, " ")
}
