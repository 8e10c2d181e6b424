package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the only calendar date format accepted on the wire.
const DateLayout = "2006-01-02"

type Date struct {
	time.Time
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// NewDatePtr returns nil for a nil or zero time.
func NewDatePtr(t *time.Time) *Date {
	if t == nil || t.IsZero() {
		return nil
	}
	return &Date{Time: *t}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date format (string expected): %w", err)
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("cannot parse date: %s", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}

	return json.Marshal(d.Time.Format(DateLayout))
}

func (d Date) String() string {
	return d.Time.Format(DateLayout)
}
