package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"slotops-service/internal/domain/slots"
	"slotops-service/internal/timeutil"
)

// StubLister is a test double for providers.SlotLister. Responses can be
// keyed by the range's end date; ByDate wins over the flat Records/Err pair.
type StubLister struct {
	Records []slots.SlotRecord
	Err     error
	ByDate  map[string]RangeResult
	Calls   atomic.Int32
	Notify  chan struct{}
}

// RangeResult is one canned fetch response.
type RangeResult struct {
	Records []slots.SlotRecord
	Err     error
}

// ListSlots returns the canned response for the range while tracking calls.
func (s *StubLister) ListSlots(ctx context.Context, r slots.DateRange) ([]slots.SlotRecord, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	if s.ByDate != nil {
		if res, ok := s.ByDate[timeutil.FormatDate(r.End)]; ok {
			return res.Records, res.Err
		}
	}
	return s.Records, s.Err
}

// StubBooker is a test double for providers.SlotBooker.
type StubBooker struct {
	OK  bool
	Err error

	mu       sync.Mutex
	requests [][]string
	cancels  [][]string
}

// BookSlots records the batch and returns the canned outcome.
func (b *StubBooker) BookSlots(ctx context.Context, ids []string) (bool, error) {
	_ = ctx
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, append([]string(nil), ids...))
	return b.OK, b.Err
}

// CancelSlots records the batch and returns the canned outcome.
func (b *StubBooker) CancelSlots(ctx context.Context, ids []string) (bool, error) {
	_ = ctx
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancels = append(b.cancels, append([]string(nil), ids...))
	return b.OK, b.Err
}

// BookRequests returns a copy of the recorded booking batches.
func (b *StubBooker) BookRequests() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.requests...)
}

// CancelRequests returns a copy of the recorded cancel batches.
func (b *StubBooker) CancelRequests() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.cancels...)
}

// StubRoundBooker is a test double for scanner.Booker that succeeds or
// fails every id uniformly.
type StubRoundBooker struct {
	Succeed bool

	mu      sync.Mutex
	batches [][]string
}

// BookIndividually records the ids and fabricates one outcome per id.
func (b *StubRoundBooker) BookIndividually(ctx context.Context, ids []string) []slots.BookingOutcome {
	_ = ctx
	b.mu.Lock()
	b.batches = append(b.batches, append([]string(nil), ids...))
	b.mu.Unlock()

	outcomes := make([]slots.BookingOutcome, 0, len(ids))
	for _, id := range ids {
		outcomes = append(outcomes, slots.BookingOutcome{SlotID: id, Success: b.Succeed})
	}
	return outcomes
}

// Batches returns a copy of the recorded id batches.
func (b *StubRoundBooker) Batches() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.batches...)
}
