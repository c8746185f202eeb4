package xtime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2026-03-15" {
		t.Errorf("String() = %q, want %q", d.String(), "2026-03-15")
	}

	if _, err = ParseDate("15/03/2026"); err == nil {
		t.Error("expected an error for the wrong layout")
	}
	if _, err = ParseDate(""); err == nil {
		t.Error("expected an error for the empty string")
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2026, time.February, 27)
	if got := d.AddDays(2).String(); got != "2026-03-01" {
		t.Errorf("AddDays(2) = %q, want %q", got, "2026-03-01")
	}
}

func TestDateBefore(t *testing.T) {
	a := NewDate(2026, time.March, 1)
	b := NewDate(2026, time.March, 2)
	if !a.Before(b) {
		t.Error("a should be before b")
	}
	if b.Before(a) {
		t.Error("b should not be before a")
	}
	if a.Before(a) {
		t.Error("a date is not before itself")
	}
}

func TestDateJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2026, time.March, 15))
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(data) != `"2026-03-15"` {
			t.Errorf("Marshal = %s", data)
		}

		var d Date
		if err = json.Unmarshal(data, &d); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if d.String() != "2026-03-15" {
			t.Errorf("String() = %q", d.String())
		}
	})

	t.Run("zero marshals as null", func(t *testing.T) {
		data, err := json.Marshal(Date{})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(data) != "null" {
			t.Errorf("Marshal = %s, want null", data)
		}
	})

	t.Run("null and empty unmarshal as zero", func(t *testing.T) {
		for _, raw := range []string{"null", `""`} {
			var d Date
			if err := json.Unmarshal([]byte(raw), &d); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", raw, err)
			}
			if !d.IsZero() {
				t.Errorf("Unmarshal(%s) should yield the zero date", raw)
			}
		}
	})
}
