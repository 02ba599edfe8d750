package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	fetchCalls       int
	fetchErrors      int
	bookingAttempts  int
	bookingSuccesses int
	lastFetchLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about fetch, booking and
// round activity. It is intentionally simple so it can be swapped for a real
// backend later.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*providerStats
	rounds int
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordFetchAttempt increments fetch counters for a provider and stores the
// last observed latency.
func (r *Recorder) RecordFetchAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.fetchCalls++
	stats.lastFetchLatency = duration
	if err != nil {
		stats.fetchErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(provider, duration, err)
	}
}

// RecordBookingAttempt tracks one per-slot booking attempt and its outcome.
func (r *Recorder) RecordBookingAttempt(provider string, duration time.Duration, success bool) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.bookingAttempts++
	if success {
		stats.bookingSuccesses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordBookingAttempt(provider, duration, success)
	}
}

// RecordRound tracks one completed scan round.
func (r *Recorder) RecordRound(duration time.Duration, candidates, fetchFailures int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.rounds++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRound(duration, candidates, fetchFailures)
	}
}

// Snapshot is a copy of the current per-provider stats.
type Snapshot struct {
	FetchCalls       int
	FetchErrors      int
	BookingAttempts  int
	BookingSuccesses int
	LastFetchLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		FetchCalls:       stats.fetchCalls,
		FetchErrors:      stats.fetchErrors,
		BookingAttempts:  stats.bookingAttempts,
		BookingSuccesses: stats.bookingSuccesses,
		LastFetchLatency: stats.lastFetchLatency,
	}
}

// Rounds returns the number of completed scan rounds recorded.
func (r *Recorder) Rounds() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rounds
}

func (r *Recorder) ensureStats(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
