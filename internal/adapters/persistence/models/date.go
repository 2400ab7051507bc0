package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is how civil dates are bound to DATE columns
const DateLayout = "2006-01-02"

// Date is a calendar day stored in a DATE column.
// It binds as "YYYY-MM-DD" so neither the process nor the server time zone can move it.
type Date struct {
	time.Time
}

// NewDate keeps the calendar day of t as seen in t's own location
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return d.Format(DateLayout), nil
}

// Scan implements sql.Scanner
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("scan date: unsupported type %T", value)
	}
}

func (d *Date) parse(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("scan date: %q too short", s)
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return fmt.Errorf("scan date: %w", err)
	}
	d.Time = t
	return nil
}
