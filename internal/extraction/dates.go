package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tripcraft/internal/models/trip_models"
)

const (
	monthPattern = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`
	dayPattern   = `(\d{1,2})(?:st|nd|rd|th)?`
	rangeSep     = `\s*(?:-|–|—|to|through|thru|until|till)\s*`
)

// dateRule is one way of reading a trip length out of text.
type dateRule struct {
	name    string
	pattern *regexp.Regexp
	extract func(m []string, now time.Time) (trip_models.TripDates, bool)
}

// dateRules are tried in order: absolute ranges first, then bare durations.
var dateRules = []dateRule{
	{
		name:    "month-day-range-year",
		pattern: regexp.MustCompile(`(?i)\b` + monthPattern + `\s+` + dayPattern + rangeSep + `(?:` + monthPattern + `\s+)?` + dayPattern + `,?\s+(\d{4})\b`),
		extract: func(m []string, _ time.Time) (trip_models.TripDates, bool) {
			year, _ := strconv.Atoi(m[5])
			return monthRange(year, m[1], m[2], m[3], m[4])
		},
	},
	{
		name:    "day-month-range-year",
		pattern: regexp.MustCompile(`(?i)\b` + dayPattern + `(?:\s+` + monthPattern + `)?` + rangeSep + dayPattern + `\s+` + monthPattern + `,?\s+(\d{4})\b`),
		extract: func(m []string, _ time.Time) (trip_models.TripDates, bool) {
			year, _ := strconv.Atoi(m[5])
			startMonth := m[2]
			if startMonth == "" {
				startMonth = m[4]
			}
			return monthRange(year, startMonth, m[1], m[4], m[3])
		},
	},
	{
		name:    "us-numeric-range",
		pattern: regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})` + rangeSep + `(\d{1,2})/(\d{1,2})/(\d{4})\b`),
		extract: func(m []string, _ time.Time) (trip_models.TripDates, bool) {
			return numericRange(m[3], m[1], m[2], m[6], m[4], m[5])
		},
	},
	{
		name:    "iso-range",
		pattern: regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})` + rangeSep + `(\d{4})-(\d{1,2})-(\d{1,2})\b`),
		extract: func(m []string, _ time.Time) (trip_models.TripDates, bool) {
			return numericRange(m[1], m[2], m[3], m[4], m[5], m[6])
		},
	},
	{
		name:    "month-day-range",
		pattern: regexp.MustCompile(`(?i)\b` + monthPattern + `\s+` + dayPattern + rangeSep + `(?:` + monthPattern + `\s+)?` + dayPattern + `\b`),
		extract: func(m []string, now time.Time) (trip_models.TripDates, bool) {
			if lowercaseMay(m[1], m[3]) {
				return trip_models.TripDates{}, false
			}
			return upcomingRange(now, func(year int) (trip_models.TripDates, bool) {
				return monthRange(year, m[1], m[2], m[3], m[4])
			})
		},
	},
	{
		name:    "day-month-range",
		pattern: regexp.MustCompile(`(?i)\b` + dayPattern + `(?:\s+` + monthPattern + `)?` + rangeSep + dayPattern + `\s+` + monthPattern + `\b`),
		extract: func(m []string, now time.Time) (trip_models.TripDates, bool) {
			if lowercaseMay(m[2], m[4]) {
				return trip_models.TripDates{}, false
			}
			startMonth := m[2]
			if startMonth == "" {
				startMonth = m[4]
			}
			return upcomingRange(now, func(year int) (trip_models.TripDates, bool) {
				return monthRange(year, startMonth, m[1], m[4], m[3])
			})
		},
	},
	{
		name:    "nights",
		pattern: regexp.MustCompile(`(?i)\b(\d{1,3}|` + spelledNumberPattern + `)[\s-]*nights?\b`),
		extract: func(m []string, _ time.Time) (trip_models.TripDates, bool) {
			n, ok := parseCount(m[1])
			if !ok {
				return trip_models.TripDates{}, false
			}
			return trip_models.FlexibleDates(n + 1), true
		},
	},
	{
		name:    "days",
		pattern: regexp.MustCompile(`(?i)\b(\d{1,3}|` + spelledNumberPattern + `)[\s-]*days?\b`),
		extract: func(m []string, _ time.Time) (trip_models.TripDates, bool) {
			n, ok := parseCount(m[1])
			if !ok {
				return trip_models.TripDates{}, false
			}
			return trip_models.FlexibleDates(n), true
		},
	},
	{
		name:    "weeks",
		pattern: regexp.MustCompile(`(?i)\b(a|an|\d{1,2}|` + spelledNumberPattern + `)[\s-]*weeks?\b`),
		extract: func(m []string, _ time.Time) (trip_models.TripDates, bool) {
			n, ok := parseCount(m[1])
			if !ok {
				return trip_models.TripDates{}, false
			}
			return trip_models.FlexibleDates(n * 7), true
		},
	},
	{
		name:    "fortnight",
		pattern: regexp.MustCompile(`(?i)\bfortnight\b`),
		extract: fixedLength(14),
	},
	{
		name:    "week-long",
		pattern: regexp.MustCompile(`(?i)\bweek[\s-]*long\b`),
		extract: fixedLength(7),
	},
	{
		name:    "long-weekend",
		pattern: regexp.MustCompile(`(?i)\blong weekend\b`),
		extract: fixedLength(3),
	},
	{
		name:    "weekend",
		pattern: regexp.MustCompile(`(?i)\bweekend\b`),
		extract: fixedLength(2),
	},
}

func resolveDates(text string, now time.Time) (trip_models.TripDates, bool) {
	for _, rule := range dateRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(text, -1) {
			if dates, ok := rule.extract(m, now); ok {
				return dates, true
			}
		}
	}
	return trip_models.TripDates{}, false
}

// lowercaseMay reports whether a month token is "may" written in lower case. Without a year
// the verb ("I may 2 to 5 people") is more likely than the month.
func lowercaseMay(tokens ...string) bool {
	for _, tok := range tokens {
		if strings.EqualFold(strings.TrimSuffix(tok, "."), "may") && !strings.HasPrefix(tok, "M") {
			return true
		}
	}
	return false
}

func fixedLength(days int) func([]string, time.Time) (trip_models.TripDates, bool) {
	return func([]string, time.Time) (trip_models.TripDates, bool) {
		return trip_models.FlexibleDates(days), true
	}
}

// monthRange builds start..end from month names and day numbers. An omitted end month means the
// start month, or the following month when the end day is smaller than the start day. A range
// that runs backwards across the new year ends in the following year.
func monthRange(year int, startMonth, startDay, endMonth, endDay string) (trip_models.TripDates, bool) {
	sm, ok := parseMonth(startMonth)
	if !ok {
		return trip_models.TripDates{}, false
	}
	sd, _ := strconv.Atoi(startDay)
	ed, _ := strconv.Atoi(endDay)

	em := sm
	if endMonth != "" {
		if em, ok = parseMonth(endMonth); !ok {
			return trip_models.TripDates{}, false
		}
	} else if ed < sd {
		em = sm%12 + 1
	}

	start, ok := calendarDate(year, sm, sd)
	if !ok {
		return trip_models.TripDates{}, false
	}
	endYear := year
	if em < sm {
		endYear++
	}
	end, ok := calendarDate(endYear, em, ed)
	if !ok {
		return trip_models.TripDates{}, false
	}

	dates, err := trip_models.FixedDates(start, end)
	return dates, err == nil
}

func numericRange(sy, sm, sd, ey, em, ed string) (trip_models.TripDates, bool) {
	start, ok := numericDate(sy, sm, sd)
	if !ok {
		return trip_models.TripDates{}, false
	}
	end, ok := numericDate(ey, em, ed)
	if !ok {
		return trip_models.TripDates{}, false
	}
	dates, err := trip_models.FixedDates(start, end)
	return dates, err == nil
}

// upcomingRange places a year-less range in the current year, or the next one if it has already started.
func upcomingRange(now time.Time, build func(year int) (trip_models.TripDates, bool)) (trip_models.TripDates, bool) {
	today := trip_models.CalendarDay(now)
	dates, ok := build(today.Year())
	if !ok {
		return dates, false
	}
	if start, _ := dates.Start(); start.Before(today) {
		return build(today.Year() + 1)
	}
	return dates, true
}

func numericDate(y, m, d string) (time.Time, bool) {
	year, err := strconv.Atoi(y)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(d)
	if err != nil {
		return time.Time{}, false
	}
	return calendarDate(year, time.Month(month), day)
}

// calendarDate rejects dates time.Date would normalise, such as Feb 30.
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func parseMonth(s string) (time.Month, bool) {
	s = strings.TrimSuffix(strings.ToLower(s), ".")
	if len(s) < 3 {
		return 0, false
	}
	switch s[:3] {
	case "jan":
		return time.January, true
	case "feb":
		return time.February, true
	case "mar":
		return time.March, true
	case "apr":
		return time.April, true
	case "may":
		return time.May, true
	case "jun":
		return time.June, true
	case "jul":
		return time.July, true
	case "aug":
		return time.August, true
	case "sep":
		return time.September, true
	case "oct":
		return time.October, true
	case "nov":
		return time.November, true
	case "dec":
		return time.December, true
	}
	return 0, false
}

const spelledNumberPattern = `one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen`

var spelledNumbers = map[string]int{
	"a": 1, "an": 1,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7,
	"eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
}

// parseCount reads a positive count written as digits or a word.
func parseCount(s string) (int, bool) {
	s = strings.ToLower(s)
	if n, ok := spelledNumbers[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
