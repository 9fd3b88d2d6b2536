package value

import (
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Layout distinguishes the four TOML date and time forms.
type Layout uint8

const (
	OffsetDateTime Layout = iota
	LocalDateTime
	LocalDate
	LocalTime
)

func (l Layout) String() string {
	switch l {
	case OffsetDateTime:
		return "offset date-time"
	case LocalDateTime:
		return "local date-time"
	case LocalDate:
		return "local date"
	case LocalTime:
		return "local time"
	}
	return fmt.Sprintf("Layout(%d)", uint8(l))
}

// DateTime is a date, time or date-time scalar. The source text is kept
// verbatim; Time converts it on demand.
type DateTime struct {
	Text   string
	Layout Layout
	Loc    Span
}

func (d *DateTime) Kind() Kind     { return KindDateTime }
func (d *DateTime) Span() Span     { return d.Loc }
func (d *DateTime) String() string { return d.Text }

// Time converts the scalar to a time.Time. Local forms are interpreted in
// UTC; a local time is placed on January 1st of year 0.
func (d *DateTime) Time() (time.Time, error) {
	switch d.Layout {
	case OffsetDateTime:
		s := strings.ToUpper(d.Text)
		if len(s) > 10 && s[10] == ' ' {
			s = s[:10] + "T" + s[11:]
		}
		return time.Parse(time.RFC3339, s)
	case LocalDateTime:
		var ldt toml.LocalDateTime
		if err := ldt.UnmarshalText([]byte(d.Text)); err != nil {
			return time.Time{}, err
		}
		return ldt.AsTime(time.UTC), nil
	case LocalDate:
		var ld toml.LocalDate
		if err := ld.UnmarshalText([]byte(d.Text)); err != nil {
			return time.Time{}, err
		}
		return ld.AsTime(time.UTC), nil
	case LocalTime:
		var lt toml.LocalTime
		if err := lt.UnmarshalText([]byte(d.Text)); err != nil {
			return time.Time{}, err
		}
		return time.Date(0, time.January, 1, lt.Hour, lt.Minute, lt.Second, lt.Nanosecond, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("value: unknown datetime layout %d", d.Layout)
}
