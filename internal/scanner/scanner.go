package scanner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"slotops-service/internal/domain/slots"
	"slotops-service/internal/logging"
	"slotops-service/internal/metrics"
	"slotops-service/internal/providers"
	"slotops-service/internal/timeutil"
)

const providerName = "storeops"

// ErrAlreadyRunning is returned by Start while a previous run is active.
var ErrAlreadyRunning = errors.New("scanner already running")

const summaryBuffer = 16

// Booker is the booking behavior the scan loop needs.
type Booker interface {
	BookIndividually(ctx context.Context, ids []string) []slots.BookingOutcome
}

// Scanner drives the scan-and-book loop: fetch every configured date range
// in parallel, join, filter the merged results, book whatever matched, then
// sleep until the next round. Fetch and booking failures degrade the round;
// only cancellation or an invalid request stops the loop.
type Scanner struct {
	lister  providers.SlotLister
	booker  Booker
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) bool

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	summaries chan slots.RoundSummary
}

// New constructs a Scanner. Logger and recorder may be nil.
func New(lister providers.SlotLister, booker Booker, logger *slog.Logger, recorder *metrics.Recorder) *Scanner {
	return &Scanner{
		lister:    lister,
		booker:    booker,
		logger:    logger,
		metrics:   recorder,
		now:       time.Now,
		sleep:     sleepContext,
		summaries: make(chan slots.RoundSummary, summaryBuffer),
	}
}

// Summaries exposes one RoundSummary per completed round. Sends never
// block the loop; a summary is dropped when the consumer falls behind.
func (s *Scanner) Summaries() <-chan slots.RoundSummary {
	return s.summaries
}

// Start validates the request and launches the loop. It rejects invalid
// requests with a ConfigError before any fetch happens, and refuses to run
// two loops at once. The loop stops when ctx is cancelled or Stop is called.
func (s *Scanner) Start(ctx context.Context, req slots.ScanRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.running = true
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer s.markStopped()
		s.run(runCtx, req)
	}()

	logging.Info(s.logger, "scan loop started",
		slog.String(logging.FieldStoreID, req.StoreID),
		slog.Int(logging.FieldCount, len(req.DateRanges)),
		slog.Int64(logging.FieldDurationMS, req.PollInterval.Milliseconds()),
	)
	return nil
}

// Stop requests cancellation. It is idempotent and safe to call at any
// time; an in-flight fetch or booking call finishes first, so the loop
// observes the stop at its next check point.
func (s *Scanner) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// IsRunning reports whether a scan loop is active.
func (s *Scanner) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Wait blocks until the current run has fully stopped. It returns
// immediately when no run was started.
func (s *Scanner) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (s *Scanner) markStopped() {
	s.mu.Lock()
	s.running = false
	s.cancel = nil
	s.mu.Unlock()
	logging.Info(s.logger, "scan loop stopped")
}

func (s *Scanner) run(ctx context.Context, req slots.ScanRequest) {
	round := 0
	for {
		if ctx.Err() != nil {
			return
		}
		round++

		summary := s.runRound(ctx, req, round)
		s.emit(summary)

		if !s.sleep(ctx, req.PollInterval) {
			return
		}
	}
}

// runRound is one Scanning(+Booking) pass. All mutable state lives in the
// round and is discarded when it ends; nothing is cached across rounds.
func (s *Scanner) runRound(ctx context.Context, req slots.ScanRequest, round int) slots.RoundSummary {
	start := s.now()

	// One goroutine per date range; the group is the join point, so the
	// filter only ever sees a complete round of results.
	results := make([][]slots.SlotRecord, len(req.DateRanges))
	failures := make([]error, len(req.DateRanges))

	var g errgroup.Group
	for i, dateRange := range req.DateRanges {
		i, dateRange := i, dateRange
		g.Go(func() error {
			fetchStart := s.now()
			records, err := s.lister.ListSlots(ctx, dateRange)
			s.metrics.RecordFetchAttempt(providerName, s.now().Sub(fetchStart), err)
			if err != nil {
				failures[i] = err
				logging.Warn(s.logger, "slot fetch failed",
					slog.Int(logging.FieldRound, round),
					slog.String(logging.FieldDate, timeutil.FormatDate(dateRange.End)),
					"error", err,
				)
				return nil
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait()

	// Merge in dispatch order so discovery order is stable across rounds.
	candidates := make([]slots.SlotRecord, 0)
	for _, records := range results {
		candidates = append(candidates, slots.Select(records, req.StoreID, req.Windows)...)
	}

	summary := slots.RoundSummary{
		Round:            round,
		DateRangesPolled: len(req.DateRanges),
		CandidatesFound:  len(candidates),
	}
	for i, err := range failures {
		if err != nil {
			summary.FetchFailures = append(summary.FetchFailures, slots.FetchFailure{
				Range: req.DateRanges[i],
				Err:   err,
			})
		}
	}

	if len(candidates) > 0 && ctx.Err() == nil {
		ids := make([]string, 0, len(candidates))
		for _, c := range candidates {
			ids = append(ids, c.ID)
		}
		logging.Info(s.logger, "eligible slots found, booking",
			slog.Int(logging.FieldRound, round),
			slog.Int(logging.FieldCount, len(ids)),
		)
		summary.Outcomes = s.booker.BookIndividually(ctx, ids)
	}

	summary.Duration = s.now().Sub(start)
	s.metrics.RecordRound(summary.Duration, summary.CandidatesFound, len(summary.FetchFailures))
	return summary
}

func (s *Scanner) emit(summary slots.RoundSummary) {
	select {
	case s.summaries <- summary:
	default:
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
