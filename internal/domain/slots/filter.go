package slots

import "time"

// Select returns the records eligible for booking: exact store match,
// not yet booked, booking allowed, and starting inside at least one
// accepted window. Source order is preserved. Records whose start time
// fails to parse are dropped rather than surfaced as errors.
func Select(records []SlotRecord, storeID string, windows []TimeWindow) []SlotRecord {
	eligible := make([]SlotRecord, 0, len(records))
	for _, rec := range records {
		if rec.StoreID != storeID || !rec.Available() {
			continue
		}
		start, err := time.Parse(time.RFC3339, rec.StartTime)
		if err != nil {
			continue
		}
		if inAnyWindow(start, windows) {
			eligible = append(eligible, rec)
		}
	}
	return eligible
}

func inAnyWindow(t time.Time, windows []TimeWindow) bool {
	for _, w := range windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}
