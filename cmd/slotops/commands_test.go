package main

import "testing"

func TestMaskToken(t *testing.T) {
	cases := map[string]string{
		"":                     "not set",
		"short":                "****",
		"12345678":             "****",
		"abcd-secret-wxyz":     "abcd...wxyz",
		"tok_0123456789abcdef": "tok_...cdef",
	}
	for raw, want := range cases {
		if got := maskToken(raw); got != want {
			t.Fatalf("maskToken(%q): expected %q, got %q", raw, want, got)
		}
	}
}

func TestSplitIDs(t *testing.T) {
	got := splitIDs([]string{"9001,9002", " 9003 ", "", "9004, ,9005"})
	want := []string{"9001", "9002", "9003", "9004", "9005"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFormatSlotClockRendersIST(t *testing.T) {
	// 03:00 UTC is 08:30 IST.
	if got := formatSlotClock("2025-09-07T03:00:00Z"); got != "08:30" {
		t.Fatalf("expected 08:30, got %q", got)
	}
	// Unparseable values pass through untouched.
	if got := formatSlotClock("whenever"); got != "whenever" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestValueOrUnset(t *testing.T) {
	if got := valueOrUnset(""); got != "not set" {
		t.Fatalf("expected not set, got %q", got)
	}
	if got := valueOrUnset("5296"); got != "5296" {
		t.Fatalf("expected 5296, got %q", got)
	}
}
