package caldate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout adalah format tanggal yang dipakai di query string dan JSON.
const Layout = "2006-01-02"

var ErrEmpty = errors.New("caldate: empty date")

// Date is a calendar day without a time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Of returns the calendar day of t as seen in t's own location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current day in loc.
func Today(loc *time.Location) Date {
	return Of(time.Now().In(loc))
}

// Parse accepts "2006-01-02" and any ISO timestamp starting with it.
// The date component is taken as written, without converting time zones,
// so "2024-05-10T23:30:00-05:00" is 10 May.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrEmpty
	}
	if len(s) > len(Layout) {
		switch s[len(Layout)] {
		case 'T', ' ', 't':
			s = s[:len(Layout)]
		}
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("caldate: parse %q: %w", s, err)
	}
	return Of(t), nil
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays normalizes across month and year boundaries.
func (d Date) AddDays(n int) Date {
	return Of(d.time().AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// ShortDay is the three letter weekday label used on revenue charts.
func (d Date) ShortDay() string { return d.Weekday().String()[:3] }

func (d Date) String() string { return d.time().Format(Layout) }

func (d Date) Format(layout string) string { return d.time().Format(layout) }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// LastDays returns the n days ending at d inclusive, oldest first.
func (d Date) LastDays(n int) []Date {
	days := make([]Date, n)
	for i := 0; i < n; i++ {
		days[i] = d.AddDays(i - n + 1)
	}
	return days
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
