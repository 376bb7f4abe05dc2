package util

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		d, err := ParseDate("2025-03-14")
		if err != nil {
			t.Fatalf("ParseDate failed: %v", err)
		}
		if d.Year() != 2025 || d.Month() != time.March || d.Day() != 14 {
			t.Errorf("unexpected date: %v", d)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		d, err := ParseDate("")
		if err != nil {
			t.Fatalf("ParseDate failed: %v", err)
		}
		if !d.IsZero() {
			t.Errorf("expected zero date, got %v", d)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		if _, err := ParseDate("14/03/2025"); err == nil {
			t.Error("expected error for malformed date")
		}
	})
}

func TestDateOnlyJSON(t *testing.T) {
	d := NewDate(2025, time.March, 14)

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `"2025-03-14"` {
		t.Errorf("unexpected JSON: %s", b)
	}

	var back DateOnly
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip mismatch: %v != %v", back, d)
	}

	b, err = json.Marshal(DateOnly{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("zero date should marshal to null, got %s", b)
	}
}
