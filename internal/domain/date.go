package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the textual form every stored exercise date uses,
// e.g. "Sun Jan 15 2023".
const DateLayout = "Mon Jan 02 2006"

// InvalidDate is stored in place of a date the caller sent but that could
// not be parsed.
const InvalidDate = "Invalid Date"

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrNotANumber  = errors.New("not a number")
)

// Layouts tried before falling back to dateparse. Date-only forms come first
// so that "2023-01-15" is read as a calendar day and never shifted by a zone.
var inputLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	DateLayout,
}

// Day is a calendar date without time of day or zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day t falls on in its own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

func (d Day) compare(o Day) int {
	switch {
	case d.Year != o.Year:
		return d.Year - o.Year
	case d.Month != o.Month:
		return int(d.Month) - int(o.Month)
	default:
		return d.Day - o.Day
	}
}

// Before reports whether d is strictly earlier than o.
func (d Day) Before(o Day) bool { return d.compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d Day) After(o Day) bool { return d.compare(o) > 0 }

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads a caller supplied date. Values carrying their own offset
// are converted into loc before the calendar day is taken.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == InvalidDate {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.In(loc), nil
}

// ParseDay is ParseDate reduced to the calendar day.
func ParseDay(s string, loc *time.Location) (Day, error) {
	t, err := ParseDate(s, loc)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

// ParseStoredDate parses a value previously produced by FormatDate.
func ParseStoredDate(s string) (Day, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Day{}, false
	}
	return DayOf(t), true
}

// ParseLeadingInt reads a base-10 integer from the start of s, ignoring
// leading white space and anything after the digits: "30 min" is 30 and
// "1.5" is 1. It returns ErrNotANumber when s does not start with digits.
func ParseLeadingInt(s string) (int, error) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, ErrNotANumber
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, ErrNotANumber
	}
	return n, nil
}
