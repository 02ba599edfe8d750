package timeutil

import (
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2025-09-07")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if FormatDate(parsed) != "2025-09-07" {
		t.Fatalf("round trip mismatch: %s", FormatDate(parsed))
	}
}

func TestParseDateRejectsOtherLayouts(t *testing.T) {
	if _, err := ParseDate("07/09/2025"); err == nil {
		t.Fatal("expected error for non-canonical layout")
	}
}

func TestFormatClockConvertsToIST(t *testing.T) {
	utc := time.Date(2025, 9, 7, 3, 0, 0, 0, time.UTC)
	if got := FormatClock(utc); got != "08:30" {
		t.Fatalf("expected 08:30 IST, got %s", got)
	}
}

func TestISTOffset(t *testing.T) {
	_, offset := time.Date(2025, 9, 7, 0, 0, 0, 0, IST).Zone()
	if offset != 5*3600+30*60 {
		t.Fatalf("expected +05:30 offset, got %d", offset)
	}
}
