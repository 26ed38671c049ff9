package draw

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the day-first layout used by the result pages.
const DateLayout = "02/01/2006"

var datePattern = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Thứ 2",
	time.Tuesday:   "Thứ 3",
	time.Wednesday: "Thứ 4",
	time.Thursday:  "Thứ 5",
	time.Friday:    "Thứ 6",
	time.Saturday:  "Thứ 7",
	time.Sunday:    "Chủ Nhật",
}

// NormalizeDate extracts the dd/mm/yyyy part of a scraped date label such as
// "Thứ 2, 14/10/2024". Text without a recognisable date is returned trimmed
// so that both dated sources still produce identical join keys.
func NormalizeDate(text string) string {
	text = strings.TrimSpace(text)
	if match := datePattern.FindString(text); match != "" {
		return match
	}
	return text
}

// ParseDate parses a dd/mm/yyyy date (single-digit day and month allowed).
// Returns the zero time if parsing fails.
func ParseDate(text string) time.Time {
	text = NormalizeDate(text)
	if text == "" {
		return time.Time{}
	}

	if t, err := time.Parse(DateLayout, text); err == nil {
		return t
	}
	if t, err := time.Parse("2/1/2006", text); err == nil {
		return t
	}
	return time.Time{}
}

// Weekday returns the Vietnamese weekday label for a date, or "" when the
// date cannot be parsed.
func Weekday(text string) string {
	t := ParseDate(text)
	if t.IsZero() {
		return ""
	}
	return weekdayNames[t.Weekday()]
}

// LabelWithWeekday prefixes the date with its weekday, e.g. "Thứ 2 14/10/2024".
func LabelWithWeekday(text string) string {
	if wd := Weekday(text); wd != "" {
		return wd + " " + text
	}
	return text
}

// ShortDate trims the year, "14/10/2024" → "14/10".
func ShortDate(text string) string {
	parts := strings.Split(text, "/")
	if len(parts) < 2 {
		return text
	}
	return parts[0] + "/" + parts[1]
}
