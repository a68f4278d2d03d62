// utils/dates.go
package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// InputDateLayout is the strict calendar form used by date inputs and the sheet.
const InputDateLayout = "2006-01-02"

var strictDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts tried after the strict form. Instants carrying a zone are moved into
// the target location before the calendar day is read.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/1/2",
	"02/01/2006",
	"2/1/2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var thaiShortMonths = [...]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from start to end, rounding partial days up.
// Both ends are truncated to midnight in their own location first.
func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// ParseDate accepts the strict YYYY-MM-DD form or any of the known looser
// layouts and returns midnight of that calendar day in loc.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}

	if strictDatePattern.MatchString(trimmed) {
		t, err := time.ParseInLocation(InputDateLayout, trimmed, loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return BeginningOfDay(t.In(loc)), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return BeginningOfDay(t), true
		}
	}

	// Spreadsheet exports sometimes hand over epoch milliseconds.
	if ms, err := strconv.ParseInt(trimmed, 10, 64); err == nil && len(trimmed) >= 10 {
		return BeginningOfDay(time.UnixMilli(ms).In(loc)), true
	}

	return time.Time{}, false
}

// ToInputDate renders value as YYYY-MM-DD in loc, or "" when it cannot be parsed.
func ToInputDate(value string, loc *time.Location) string {
	t, ok := ParseDate(value, loc)
	if !ok {
		return ""
	}
	return t.Format(InputDateLayout)
}

// DaysUntil returns the number of calendar days from now until value, using
// now's location as the local calendar. Past dates are negative.
func DaysUntil(value string, now time.Time) *int {
	target, ok := ParseDate(value, now.Location())
	if !ok {
		return nil
	}
	days := DaysBetween(now, target)
	return &days
}

// FormatThaiDate renders value like "2 พ.ค. 2567" (Buddhist era), "-" when absent.
func FormatThaiDate(value string, loc *time.Location) string {
	t, ok := ParseDate(value, loc)
	if !ok {
		return "-"
	}
	return strconv.Itoa(t.Day()) + " " + thaiShortMonths[t.Month()-1] + " " + strconv.Itoa(t.Year()+543)
}
