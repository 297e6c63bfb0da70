package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format is the ISO-8601 layout used to write dates.
const Format = "2006-01-02"

// parseLayouts are tried in order by Parse. Timestamp layouts lose their time part.
var parseLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Date is a calendar day with no time component.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// FromTime drops the time part of t, keeping its calendar day in t's location.
func FromTime(t time.Time) Date { return New(t.Date()) }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(x Date) bool { return d.Time().Before(x.Time()) }
func (d Date) After(x Date) bool  { return d.Time().After(x.Time()) }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.Time().Format(Format) }

// Parse reads a date in any of the accepted layouts.
func Parse(str string) (Date, error) {
	s := strings.TrimSpace(str)
	for _, layout := range parseLayouts {
		if on, err := time.Parse(layout, s); err == nil {
			return FromTime(on), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, Format)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
