package slots

import (
	"testing"
)

func eligibleSlot(id, storeID, start string) SlotRecord {
	return SlotRecord{
		ID:              id,
		StoreID:         storeID,
		StartTime:       start,
		EndTime:         start,
		BookingEligible: true,
	}
}

func mustWindow(t *testing.T, spec string) TimeWindow {
	t.Helper()
	w, err := ParseWindow(spec)
	if err != nil {
		t.Fatalf("bad window %q: %v", spec, err)
	}
	return w
}

func TestSelectKeepsOnlyEligibleRecords(t *testing.T) {
	windows := []TimeWindow{mustWindow(t, "08:00-10:00")}

	// 03:00 UTC = 08:30 IST, inside the window.
	inWindow := "2025-09-07T03:00:00Z"
	// 12:00 UTC = 17:30 IST, outside.
	outOfWindow := "2025-09-07T12:00:00Z"

	records := []SlotRecord{
		eligibleSlot("keep-1", "5296", inWindow),
		eligibleSlot("other-store", "9999", inWindow),
		{ID: "booked", StoreID: "5296", StartTime: inWindow, IsBooked: true, BookingEligible: true},
		{ID: "not-allowed", StoreID: "5296", StartTime: inWindow},
		eligibleSlot("wrong-time", "5296", outOfWindow),
		eligibleSlot("bad-time", "5296", "not-a-timestamp"),
		eligibleSlot("keep-2", "5296", inWindow),
	}

	got := Select(records, "5296", windows)
	if len(got) != 2 {
		t.Fatalf("expected 2 eligible records, got %d: %+v", len(got), got)
	}
	if got[0].ID != "keep-1" || got[1].ID != "keep-2" {
		t.Fatalf("expected source order preserved, got %+v", got)
	}
}

func TestSelectNeverReturnsOtherStores(t *testing.T) {
	windows := []TimeWindow{mustWindow(t, "00:00-23:59")}
	records := []SlotRecord{
		eligibleSlot("a", "1", "2025-09-07T03:00:00Z"),
		eligibleSlot("b", "2", "2025-09-07T03:00:00Z"),
	}

	for _, rec := range Select(records, "1", windows) {
		if rec.StoreID != "1" {
			t.Fatalf("record from store %s leaked through", rec.StoreID)
		}
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	windows := []TimeWindow{mustWindow(t, "08:00-10:00")}
	records := []SlotRecord{
		eligibleSlot("a", "5296", "2025-09-07T03:00:00Z"),
		eligibleSlot("b", "5296", "2025-09-07T12:00:00Z"),
	}

	once := Select(records, "5296", windows)
	twice := Select(once, "5296", windows)
	if len(once) != len(twice) {
		t.Fatalf("expected idempotent filter, got %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("expected identical results, got %+v vs %+v", once, twice)
		}
	}
}

func TestSelectOverlappingWindowsWidenAcceptance(t *testing.T) {
	windows := []TimeWindow{
		mustWindow(t, "08:00-10:00"),
		mustWindow(t, "09:00-12:00"),
	}
	// 05:00 UTC = 10:30 IST: only the second window accepts it.
	records := []SlotRecord{eligibleSlot("a", "5296", "2025-09-07T05:00:00Z")}

	if got := Select(records, "5296", windows); len(got) != 1 {
		t.Fatalf("expected overlapping windows to widen acceptance, got %d", len(got))
	}
}

func TestSelectEmptyInput(t *testing.T) {
	windows := []TimeWindow{mustWindow(t, "08:00-10:00")}
	if got := Select(nil, "5296", windows); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestSelectHonorsEncodedOffset(t *testing.T) {
	windows := []TimeWindow{mustWindow(t, "08:00-10:00")}
	// 08:30+05:30 is already IST; no double conversion.
	records := []SlotRecord{eligibleSlot("a", "5296", "2025-09-07T08:30:00+05:30")}

	if got := Select(records, "5296", windows); len(got) != 1 {
		t.Fatalf("expected record encoded in IST to match, got %d", len(got))
	}
}
