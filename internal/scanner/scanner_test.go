package scanner

import (
	"context"
	"testing"
	"time"

	"slotops-service/internal/domain/slots"
	"slotops-service/internal/teststubs"
	"slotops-service/internal/testutil"
)

func mustRange(t *testing.T, date string) slots.DateRange {
	t.Helper()
	r, err := slots.RangeForDate(date)
	if err != nil {
		t.Fatalf("building range for %s: %v", date, err)
	}
	return r
}

func mustWindow(t *testing.T, value string) slots.TimeWindow {
	t.Helper()
	w, err := slots.ParseWindow(value)
	if err != nil {
		t.Fatalf("parsing window %s: %v", value, err)
	}
	return w
}

func validRequest(t *testing.T, ranges ...slots.DateRange) slots.ScanRequest {
	t.Helper()
	return slots.ScanRequest{
		DateRanges:   ranges,
		StoreID:      "5296",
		Windows:      []slots.TimeWindow{mustWindow(t, "08:00-10:00")},
		PollInterval: time.Second,
	}
}

// stopAfter builds a sleep func that completes n rounds and then ends the loop.
func stopAfter(n int) func(context.Context, time.Duration) bool {
	remaining := n
	return func(context.Context, time.Duration) bool {
		remaining--
		return remaining > 0
	}
}

func eligibleSlot(id, storeID string) slots.SlotRecord {
	return slots.SlotRecord{
		ID:              id,
		StoreID:         storeID,
		StartTime:       "2025-09-07T03:00:00Z",
		EndTime:         "2025-09-07T05:00:00Z",
		BookingEligible: true,
	}
}

func TestStartRejectsIntervalBelowFloor(t *testing.T) {
	s := New(&teststubs.StubLister{}, &teststubs.StubRoundBooker{}, nil, nil)

	req := validRequest(t, mustRange(t, "2025-09-07"))
	req.PollInterval = 100 * time.Millisecond

	err := s.Start(context.Background(), req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if _, ok := slots.AsConfigError(err); !ok {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
	if s.IsRunning() {
		t.Fatal("rejected start must not leave the loop running")
	}
}

func TestStartRefusesConcurrentRuns(t *testing.T) {
	lister := &teststubs.StubLister{}
	s := New(lister, &teststubs.StubRoundBooker{}, nil, nil)
	s.sleep = func(ctx context.Context, d time.Duration) bool {
		<-ctx.Done()
		return false
	}

	req := validRequest(t, mustRange(t, "2025-09-07"))
	if err := s.Start(context.Background(), req); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := s.Start(context.Background(), req); err != ErrAlreadyRunning {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	s.Stop()
	s.Wait()
	if s.IsRunning() {
		t.Fatal("expected loop stopped after Stop")
	}

	// A stopped scanner accepts a fresh run.
	if err := s.Start(context.Background(), req); err != nil {
		t.Fatalf("restart after stop: %v", err)
	}
	s.Stop()
	s.Wait()
}

func TestRoundBooksEligibleSlotsInDiscoveryOrder(t *testing.T) {
	rangeA := mustRange(t, "2025-09-07")
	rangeB := mustRange(t, "2025-09-08")
	lister := &teststubs.StubLister{
		ByDate: map[string]teststubs.RangeResult{
			"2025-09-07": {Records: []slots.SlotRecord{
				eligibleSlot("slot-a1", "5296"),
				{ID: "booked", StoreID: "5296", StartTime: "2025-09-07T03:00:00Z", IsBooked: true, BookingEligible: true},
			}},
			"2025-09-08": {Records: []slots.SlotRecord{
				eligibleSlot("slot-b1", "5296"),
				eligibleSlot("other-store", "9999"),
			}},
		},
	}
	booker := &teststubs.StubRoundBooker{Succeed: true}

	s := New(lister, booker, nil, nil)
	s.sleep = stopAfter(1)
	s.now = testutil.NowAt(testutil.MustParseRFC3339("2025-09-06T19:00:00Z"))

	if err := s.Start(context.Background(), validRequest(t, rangeA, rangeB)); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Wait()

	batches := booker.Batches()
	if len(batches) != 1 {
		t.Fatalf("expected one booking batch, got %d", len(batches))
	}
	if len(batches[0]) != 2 || batches[0][0] != "slot-a1" || batches[0][1] != "slot-b1" {
		t.Fatalf("expected [slot-a1 slot-b1] in discovery order, got %v", batches[0])
	}

	select {
	case summary := <-s.Summaries():
		if summary.Round != 1 || summary.DateRangesPolled != 2 {
			t.Fatalf("unexpected summary %+v", summary)
		}
		if summary.CandidatesFound != 2 || summary.Booked() != 2 {
			t.Fatalf("expected 2 candidates and 2 booked, got %+v", summary)
		}
		if len(summary.FetchFailures) != 0 {
			t.Fatalf("expected no fetch failures, got %+v", summary.FetchFailures)
		}
		if summary.Duration != 0 {
			t.Fatalf("fixed clock should yield zero duration, got %s", summary.Duration)
		}
	default:
		t.Fatal("expected a round summary")
	}
}

func TestPartialFetchFailureDegradesRound(t *testing.T) {
	rangeA := mustRange(t, "2025-09-07")
	rangeB := mustRange(t, "2025-09-08")
	lister := &teststubs.StubLister{
		ByDate: map[string]teststubs.RangeResult{
			"2025-09-07": {Err: context.DeadlineExceeded},
			"2025-09-08": {Records: []slots.SlotRecord{eligibleSlot("slot-b1", "5296")}},
		},
	}
	booker := &teststubs.StubRoundBooker{Succeed: true}

	s := New(lister, booker, nil, nil)
	s.sleep = stopAfter(2)

	if err := s.Start(context.Background(), validRequest(t, rangeA, rangeB)); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Wait()

	summary := <-s.Summaries()
	if len(summary.FetchFailures) != 1 {
		t.Fatalf("expected one fetch failure, got %+v", summary.FetchFailures)
	}
	if !summary.FetchFailures[0].Range.End.Equal(rangeA.End) {
		t.Fatalf("failure recorded against wrong range: %+v", summary.FetchFailures[0])
	}
	if summary.CandidatesFound != 1 {
		t.Fatalf("expected the healthy range's candidate, got %+v", summary)
	}

	// The failure must not end the loop; a second round still runs.
	second := <-s.Summaries()
	if second.Round != 2 {
		t.Fatalf("expected round 2, got %d", second.Round)
	}
	if int(lister.Calls.Load()) != 4 {
		t.Fatalf("expected 4 fetches across 2 rounds, got %d", lister.Calls.Load())
	}
}

func TestNoCandidatesMeansNoBookingCalls(t *testing.T) {
	lister := &teststubs.StubLister{
		Records: []slots.SlotRecord{
			{ID: "ineligible", StoreID: "5296", StartTime: "2025-09-07T03:00:00Z", BookingEligible: false},
		},
	}
	booker := &teststubs.StubRoundBooker{Succeed: true}

	s := New(lister, booker, nil, nil)
	s.sleep = stopAfter(1)

	if err := s.Start(context.Background(), validRequest(t, mustRange(t, "2025-09-07"))); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Wait()

	if len(booker.Batches()) != 0 {
		t.Fatalf("expected no booking calls, got %v", booker.Batches())
	}
	summary := <-s.Summaries()
	if summary.CandidatesFound != 0 || len(summary.Outcomes) != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestStopDuringSleepEndsLoop(t *testing.T) {
	lister := &teststubs.StubLister{}
	s := New(lister, &teststubs.StubRoundBooker{}, nil, nil)

	sleeping := make(chan struct{})
	s.sleep = func(ctx context.Context, d time.Duration) bool {
		select {
		case <-sleeping:
		default:
			close(sleeping)
		}
		<-ctx.Done()
		return false
	}

	if err := s.Start(context.Background(), validRequest(t, mustRange(t, "2025-09-07"))); err != nil {
		t.Fatalf("start: %v", err)
	}

	<-sleeping
	s.Stop()
	s.Wait()

	if s.IsRunning() {
		t.Fatal("expected loop stopped")
	}
	if got := lister.Calls.Load(); got != 1 {
		t.Fatalf("expected exactly one fetch before stop, got %d", got)
	}
}

func TestParentContextCancelEndsLoop(t *testing.T) {
	lister := &teststubs.StubLister{Notify: make(chan struct{})}
	s := New(lister, &teststubs.StubRoundBooker{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx, validRequest(t, mustRange(t, "2025-09-07"))); err != nil {
		t.Fatalf("start: %v", err)
	}

	<-lister.Notify
	cancel()
	s.Wait()

	if s.IsRunning() {
		t.Fatal("expected loop stopped after parent cancellation")
	}
}

func TestSummariesNeverBlockTheLoop(t *testing.T) {
	lister := &teststubs.StubLister{}
	s := New(lister, &teststubs.StubRoundBooker{}, nil, nil)
	s.sleep = stopAfter(summaryBuffer + 5)

	if err := s.Start(context.Background(), validRequest(t, mustRange(t, "2025-09-07"))); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Wait()

	// Nobody drained the channel; the loop must still have finished every round.
	if got := lister.Calls.Load(); got != int32(summaryBuffer+5) {
		t.Fatalf("expected %d rounds, got %d", summaryBuffer+5, got)
	}
	if len(s.summaries) != summaryBuffer {
		t.Fatalf("expected a full summary buffer, got %d", len(s.summaries))
	}
}
