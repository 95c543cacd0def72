package form

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dukex/approved-premises/pkg/models"
)

// Body holds the raw answers for a single page. Values arrive either as a single string or
// as a list of strings (checkbox groups), and are coerced by the page constructor.
type Body map[string]any

// BodyFrom converts stored page data into a Body without copying.
func BodyFrom(data models.PageData) Body {
	return Body(data)
}

// PageData converts the body into its stored representation.
func (b Body) PageData() models.PageData {
	return models.PageData(b)
}

// Clone returns a shallow copy of the body.
func (b Body) Clone() Body {
	out := make(Body, len(b))
	for k, v := range b {
		out[k] = v
	}

	return out
}

// String returns the value at key as a string. A list yields its first element.
func (b Body) String(key string) string {
	switch v := b[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}

	return ""
}

// Strings returns the value at key as a list of strings. A single string becomes a
// one-element list and an absent value becomes an empty list.
func (b Body) Strings(key string) []string {
	switch v := b[key].(type) {
	case string:
		return []string{v}
	case []string:
		out := make([]string, len(v))
		copy(out, v)

		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	}

	return []string{}
}

// StringMap returns the value at key as a map of strings, used for nested answers
// keyed by question id.
func (b Body) StringMap(key string) map[string]string {
	out := make(map[string]string)

	switch v := b[key].(type) {
	case map[string]string:
		for k, s := range v {
			out[k] = s
		}
	case map[string]any:
		for k, item := range v {
			if s, ok := item.(string); ok {
				out[k] = s
			}
		}
	}

	return out
}

// Date reads a composite date split into key-day, key-month and key-year fields.
func (b Body) Date(key string) Date {
	return Date{
		Day:   strings.TrimSpace(b.String(key + "-day")),
		Month: strings.TrimSpace(b.String(key + "-month")),
		Year:  strings.TrimSpace(b.String(key + "-year")),
	}
}

// PutDate writes a composite date back into its sub-fields, together with the ISO
// representation under key when the date is valid.
func (b Body) PutDate(key string, d Date) {
	if d.Day != "" {
		b[key+"-day"] = d.Day
	}

	if d.Month != "" {
		b[key+"-month"] = d.Month
	}

	if d.Year != "" {
		b[key+"-year"] = d.Year
	}

	if d.Valid() {
		b[key] = d.ISO()
	}
}

// Encode turns a page body struct into a Body using its json tags.
func Encode(v any) Body {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("page body is not JSON-serializable: %w", err))
	}

	out := make(Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Errorf("page body is not a JSON object: %w", err))
	}

	return out
}

// Date is a date entered as separate day, month and year fields.
type Date struct {
	Day   string
	Month string
	Year  string
}

// Empty reports whether none of the sub-fields were given.
func (d Date) Empty() bool {
	return d.Day == "" && d.Month == "" && d.Year == ""
}

// Time returns the date at midnight UTC. ok is false for incomplete or impossible dates.
func (d Date) Time() (time.Time, bool) {
	day, err := strconv.Atoi(d.Day)
	if err != nil {
		return time.Time{}, false
	}

	month, err := strconv.Atoi(d.Month)
	if err != nil {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(d.Year)
	if err != nil || len(d.Year) != 4 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}

	return t, true
}

// Valid reports whether the sub-fields form a real calendar date.
func (d Date) Valid() bool {
	_, ok := d.Time()

	return ok
}

// ISO formats the date as YYYY-MM-DD, or returns an empty string when invalid.
func (d Date) ISO() string {
	t, ok := d.Time()
	if !ok {
		return ""
	}

	return t.Format(time.DateOnly)
}

// Display formats the date for review screens, e.g. "2 January 2026".
func (d Date) Display() string {
	t, ok := d.Time()
	if !ok {
		return ""
	}

	return t.Format("2 January 2006")
}

// ParseDuration combines a weeks and days pair into a number of days. Empty parts count
// as zero; ok is false when both are empty, either is not a whole number or the total is
// not positive.
func ParseDuration(weeks, days string) (int, bool) {
	weeks, days = strings.TrimSpace(weeks), strings.TrimSpace(days)
	if weeks == "" && days == "" {
		return 0, false
	}

	total := 0

	for _, part := range []struct {
		value string
		scale int
	}{{weeks, 7}, {days, 1}} {
		if part.value == "" {
			continue
		}

		n, err := strconv.Atoi(part.value)
		if err != nil || n < 0 {
			return 0, false
		}

		total += n * part.scale
	}

	return total, total > 0
}

// FormatDuration renders a number of days as weeks and days, e.g. "2 weeks, 3 days".
func FormatDuration(days int) string {
	weeks, rest := days/7, days%7

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit
		}

		return strconv.Itoa(n) + " " + unit + "s"
	}

	switch {
	case weeks == 0:
		return plural(rest, "day")
	case rest == 0:
		return plural(weeks, "week")
	default:
		return plural(weeks, "week") + ", " + plural(rest, "day")
	}
}
