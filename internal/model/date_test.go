package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_MarshalJSON(t *testing.T) {
	d := NewDate(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `"2024-01-10"` {
		t.Fatalf("expected \"2024-01-10\", got %s", b)
	}

	b, err = json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal zero failed: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("expected null for zero date, got %s", b)
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-02-29"`), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", d)
	}

	if err := json.Unmarshal([]byte(`"29-02-2024"`), &d); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
	if err := json.Unmarshal([]byte(`12`), &d); err == nil {
		t.Fatalf("expected error for non string date")
	}
}

func TestParseDate_RejectsImpossibleDates(t *testing.T) {
	if _, err := ParseDate("2023-02-30"); err == nil {
		t.Fatalf("expected error for 2023-02-30")
	}
	got, err := ParseDate("2023-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", got.Location())
	}
}

func TestNewDatePtr(t *testing.T) {
	if NewDatePtr(nil) != nil {
		t.Fatalf("expected nil for nil time")
	}
	zero := time.Time{}
	if NewDatePtr(&zero) != nil {
		t.Fatalf("expected nil for zero time")
	}
	now := time.Now()
	if p := NewDatePtr(&now); p == nil || !p.Time.Equal(now) {
		t.Fatalf("expected date wrapping %v, got %v", now, p)
	}
}
