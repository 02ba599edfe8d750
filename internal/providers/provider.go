package providers

import (
	"context"

	"slotops-service/internal/domain/slots"
)

// SlotLister fetches the slots visible inside one date range and normalizes
// them into domain records. Implementations must not retry: the scan loop's
// next poll round is the retry.
type SlotLister interface {
	ListSlots(ctx context.Context, r slots.DateRange) ([]slots.SlotRecord, error)
}

// SlotBooker reserves or releases slots by id in a single upstream call.
// The returned bool reflects the payload's success flag; transport and
// status failures come back as errors for the caller to fold.
type SlotBooker interface {
	BookSlots(ctx context.Context, ids []string) (bool, error)
	CancelSlots(ctx context.Context, ids []string) (bool, error)
}

// StoreLister fetches the store-grouped slot listing for display surfaces.
type StoreLister interface {
	ListStores(ctx context.Context, r slots.DateRange) ([]slots.StoreListing, error)
}

// SlotProvider combines all provider capabilities.
type SlotProvider interface {
	SlotLister
	SlotBooker
	StoreLister
}
