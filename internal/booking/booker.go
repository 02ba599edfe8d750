package booking

import (
	"context"
	"log/slog"
	"time"

	"slotops-service/internal/domain/slots"
	"slotops-service/internal/logging"
	"slotops-service/internal/metrics"
	"slotops-service/internal/providers"
)

const providerName = "storeops"

// paceDelay spaces consecutive booking requests as a courtesy to the
// upstream API; it is not a correctness requirement.
const paceDelay = 100 * time.Millisecond

// Booker submits slot reservations one id at a time or as a combined
// batch. Transport and status failures never escape as errors; they fold
// into per-slot outcomes the scan loop inspects.
type Booker struct {
	provider providers.SlotBooker
	logger   *slog.Logger
	metrics  *metrics.Recorder
	sleep    func(time.Duration)
	now      func() time.Time
}

// New constructs a Booker. Logger and recorder may be nil.
func New(provider providers.SlotBooker, logger *slog.Logger, recorder *metrics.Recorder) *Booker {
	return &Booker{
		provider: provider,
		logger:   logger,
		metrics:  recorder,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// BookIndividually books each slot id with its own request, in order,
// pacing attempts apart. One failure never blocks later ids. The result
// always holds exactly one outcome per input id, and an empty input issues
// no requests at all.
func (b *Booker) BookIndividually(ctx context.Context, ids []string) []slots.BookingOutcome {
	outcomes := make([]slots.BookingOutcome, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			b.sleep(paceDelay)
		}

		start := b.now()
		ok, err := b.provider.BookSlots(ctx, []string{id})
		success := ok && err == nil
		b.metrics.RecordBookingAttempt(providerName, b.now().Sub(start), success)

		if success {
			logging.Info(b.logger, "slot booked", slog.String(logging.FieldSlotID, id))
		} else {
			logging.Warn(b.logger, "slot booking failed", slog.String(logging.FieldSlotID, id), "error", err)
		}
		outcomes = append(outcomes, slots.BookingOutcome{SlotID: id, Success: success})
	}
	return outcomes
}

// BookCombined books every id in a single request. On failure nothing is
// known about individual ids, so the caller must treat the whole batch as
// failed.
func (b *Booker) BookCombined(ctx context.Context, ids []string) bool {
	if len(ids) == 0 {
		return false
	}

	start := b.now()
	ok, err := b.provider.BookSlots(ctx, ids)
	success := ok && err == nil
	b.metrics.RecordBookingAttempt(providerName, b.now().Sub(start), success)

	if success {
		logging.Info(b.logger, "combined booking succeeded", slog.Int(logging.FieldCount, len(ids)))
	} else {
		logging.Warn(b.logger, "combined booking failed", slog.Int(logging.FieldCount, len(ids)), "error", err)
	}
	return success
}

// Cancel releases every id in a single request, with the same all-or-
// nothing contract as BookCombined.
func (b *Booker) Cancel(ctx context.Context, ids []string) bool {
	if len(ids) == 0 {
		return false
	}

	ok, err := b.provider.CancelSlots(ctx, ids)
	success := ok && err == nil
	if success {
		logging.Info(b.logger, "slots cancelled", slog.Int(logging.FieldCount, len(ids)))
	} else {
		logging.Warn(b.logger, "slot cancellation failed", slog.Int(logging.FieldCount, len(ids)), "error", err)
	}
	return success
}
