package data

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDateFormat is returned by UnmarshalJSON when the value is not a date we recognise.
var ErrInvalidDateFormat = errors.New("invalid date format")

// Date is a calendar date with no time-of-day or zone component. It is encoded in JSON as
// "YYYY-MM-DD", and stored in DATE columns.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func dateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON writes the zero Date as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(dateLayout))), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" as well as the full timestamp forms clients tend to send
// ("2006-01-02T15:04:05" and RFC 3339). Any time-of-day component is dropped.
func (d *Date) UnmarshalJSON(jsonValue []byte) error {
	if string(jsonValue) == "null" {
		*d = Date{}
		return nil
	}

	unquoted, err := strconv.Unquote(string(jsonValue))
	if err != nil {
		return ErrInvalidDateFormat
	}

	for _, layout := range []string{dateLayout, "2006-01-02T15:04:05", time.RFC3339} {
		t, err := time.Parse(layout, unquoted)
		if err == nil {
			*d = dateOf(t)
			return nil
		}
	}

	return ErrInvalidDateFormat
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = dateOf(v)
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

func (d *Date) parse(s string) error {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("cannot scan %q into Date: %w", s, err)
	}
	*d = dateOf(t)
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(dateLayout), nil
}
