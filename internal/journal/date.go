package journal

import (
	"fmt"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
)

// Date is a calendar date in YYYY-MM-DD form. The zero value is "no date".
type Date string

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, common.ErrValidation)
	}
	return Date(t.Format(common.DateLayout)), nil
}

// DateOf returns the date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(common.DateLayout))
}

func Today() Date {
	return DateOf(time.Now())
}

func (d Date) String() string { return string(d) }

func (d Date) IsZero() bool { return d == "" }

// Time returns midnight UTC of d. Invalid dates yield the zero time.
func (d Date) Time() time.Time {
	t, _ := time.Parse(common.DateLayout, string(d))
	return t
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}
