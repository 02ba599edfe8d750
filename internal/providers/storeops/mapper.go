package storeops

import "slotops-service/internal/domain/slots"

func mapStore(s storeResponse) slots.StoreListing {
	listing := slots.StoreListing{
		ID:      string(s.ID),
		Name:    s.Name,
		Address: s.Address,
		Slots:   make([]slots.SlotRecord, 0, len(s.Slots)),
	}
	for _, slot := range s.Slots {
		listing.Slots = append(listing.Slots, mapSlot(string(s.ID), slot))
	}
	return listing
}

func mapSlot(storeID string, s slotResponse) slots.SlotRecord {
	return slots.SlotRecord{
		ID:              string(s.ID),
		StoreID:         storeID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		IsBooked:        s.IsBooked,
		BookingEligible: s.BookingEligibility.Allowed,
		MinPayout:       s.MinPayout,
		MaxPayout:       s.MaxPayout,
		Cancellable:     s.IsCancellable,
	}
}
