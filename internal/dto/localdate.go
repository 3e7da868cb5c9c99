package dto

import (
	"fmt"
	"strings"
	"time"
)

// localDateLayout is the wire format for calendar dates (no time component).
const localDateLayout = "2006-01-02"

// LocalDate is a calendar date serialized as "YYYY-MM-DD". Birth dates and
// visit dates carry no time-of-day or zone information, so a bare date type
// keeps the wire format unambiguous.
type LocalDate struct {
	time.Time
}

// NewLocalDate builds a LocalDate from a time value, truncating any
// time-of-day component.
func NewLocalDate(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(localDateLayout) + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string (or JSON null).
func (d *LocalDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(localDateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// String returns the "YYYY-MM-DD" form.
func (d LocalDate) String() string { return d.Format(localDateLayout) }
