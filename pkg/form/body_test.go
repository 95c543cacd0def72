package form_test

import (
	"testing"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/stretchr/testify/assert"
)

func TestBody_Strings(t *testing.T) {
	tests := []struct {
		name string
		body form.Body
		want []string
	}{
		{name: "absent", body: form.Body{}, want: []string{}},
		{name: "single checkbox", body: form.Body{"needs": "mobility"}, want: []string{"mobility"}},
		{name: "checkbox group", body: form.Body{"needs": []string{"mobility", "healthcare"}}, want: []string{"mobility", "healthcare"}},
		{name: "decoded JSON list", body: form.Body{"needs": []any{"mobility", 3, "healthcare"}}, want: []string{"mobility", "healthcare"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.body.Strings("needs"))
		})
	}
}

func TestBody_String(t *testing.T) {
	body := form.Body{"text": "a", "list": []string{"b", "c"}, "number": 3.5, "flag": true}

	assert.Equal(t, "a", body.String("text"))
	assert.Equal(t, "b", body.String("list"))
	assert.Equal(t, "3.5", body.String("number"))
	assert.Equal(t, "true", body.String("flag"))
	assert.Empty(t, body.String("missing"))
}

func TestBody_Date(t *testing.T) {
	body := form.Body{"releaseDate-day": " 2 ", "releaseDate-month": "1", "releaseDate-year": "2026"}

	date := body.Date("releaseDate")
	assert.True(t, date.Valid())
	assert.Equal(t, "2026-01-02", date.ISO())
	assert.Equal(t, "2 January 2026", date.Display())

	out := form.Body{}
	out.PutDate("releaseDate", date)
	assert.Equal(t, form.Body{
		"releaseDate-day":   "2",
		"releaseDate-month": "1",
		"releaseDate-year":  "2026",
		"releaseDate":       "2026-01-02",
	}, out)
}

func TestDate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		date form.Date
	}{
		{name: "empty", date: form.Date{}},
		{name: "31 February", date: form.Date{Day: "31", Month: "2", Year: "2026"}},
		{name: "two digit year", date: form.Date{Day: "1", Month: "2", Year: "26"}},
		{name: "not a number", date: form.Date{Day: "first", Month: "2", Year: "2026"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.date.Valid())
			assert.Empty(t, tt.date.ISO())

			out := form.Body{}
			out.PutDate("d", tt.date)
			assert.NotContains(t, out, "d")
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		weeks, days string
		want        int
		ok          bool
	}{
		{weeks: "2", days: "3", want: 17, ok: true},
		{weeks: "", days: "5", want: 5, ok: true},
		{weeks: "1", days: "", want: 7, ok: true},
		{weeks: "", days: "", ok: false},
		{weeks: "0", days: "0", ok: false},
		{weeks: "-1", days: "3", ok: false},
		{weeks: "two", days: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.weeks+"w"+tt.days+"d", func(t *testing.T) {
			got, ok := form.ParseDuration(tt.weeks, tt.days)
			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	var errs form.FieldErrors

	errs.Add("b", "first b")
	errs.Add("a", "first a")
	errs.Add("b", "second b")

	assert.Len(t, errs, 2)
	assert.Equal(t, map[string]string{"a": "first a", "b": "first b"}, errs.Map())
	assert.Equal(t, []form.ErrorSummaryItem{
		{Text: "first b", Href: "#b"},
		{Text: "first a", Href: "#a"},
	}, errs.Summary())
}
