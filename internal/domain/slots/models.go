package slots

import (
	"fmt"
	"strings"
	"time"

	"slotops-service/internal/timeutil"
)

// Slot days close at 18:30 UTC (midnight IST); a scan window covers the
// 24 hours leading up to that close.
const (
	dayCloseHour   = 18
	dayCloseMinute = 30
	rangeSpan      = 24 * time.Hour
)

// MinPollInterval is the floor for how often the scan loop may hit the API.
const MinPollInterval = 200 * time.Millisecond

// SlotRecord is one bookable slot as reported by the scheduling API.
// Records are ephemeral: fetched fresh each round, filtered, then discarded.
// Timestamps stay in their RFC3339 wire form; eligibility checks parse them
// on demand so a malformed value rejects only that record.
type SlotRecord struct {
	ID              string
	StoreID         string
	StartTime       string
	EndTime         string
	IsBooked        bool
	BookingEligible bool
	MinPayout       float64
	MaxPayout       float64
	Cancellable     bool
}

// Available reports whether the slot can still be claimed.
func (s SlotRecord) Available() bool {
	return !s.IsBooked && s.BookingEligible
}

// StoreListing groups the slots the API returned for one store.
type StoreListing struct {
	ID      string
	Name    string
	Address string
	Slots   []SlotRecord
}

// DateRange is one 24-hour scan window, end exclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// RangeForDate builds the scan window for a YYYY-MM-DD calendar day:
// the window ends at 18:30 UTC of that day and starts 24 hours earlier.
func RangeForDate(date string) (DateRange, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	end := time.Date(day.Year(), day.Month(), day.Day(), dayCloseHour, dayCloseMinute, 0, 0, time.UTC)
	return DateRange{Start: end.Add(-rangeSpan), End: end}, nil
}

// RangesForDates builds one range per date, capped at max when max > 0.
func RangesForDates(dates []string, max int) ([]DateRange, error) {
	if max > 0 && len(dates) > max {
		return nil, &ConfigError{Reason: fmt.Sprintf("too many dates: %d (max %d)", len(dates), max)}
	}
	ranges := make([]DateRange, 0, len(dates))
	for _, d := range dates {
		r, err := RangeForDate(d)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses an HH:MM time of day.
func ParseClock(value string) (ClockTime, error) {
	t, err := time.Parse(timeutil.ClockLayout, value)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// TimeWindow is an accepted time-of-day interval, From inclusive, To
// exclusive, evaluated in IST.
type TimeWindow struct {
	From ClockTime
	To   ClockTime
}

// Contains reports whether the timestamp's IST time of day falls in the window.
func (w TimeWindow) Contains(t time.Time) bool {
	ist := t.In(timeutil.IST)
	tod := ist.Hour()*60 + ist.Minute()
	return w.From.minutes() <= tod && tod < w.To.minutes()
}

func (w TimeWindow) String() string {
	return w.From.String() + "-" + w.To.String()
}

// ParseWindow parses an HH:MM-HH:MM window.
func ParseWindow(value string) (TimeWindow, error) {
	fromRaw, toRaw, ok := strings.Cut(value, "-")
	if !ok {
		return TimeWindow{}, fmt.Errorf("invalid window %q: want HH:MM-HH:MM", value)
	}
	from, err := ParseClock(fromRaw)
	if err != nil {
		return TimeWindow{}, err
	}
	to, err := ParseClock(toRaw)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{From: from, To: to}, nil
}

// ScanRequest is the immutable configuration for one scan-and-book run.
// Changing targets requires stopping the loop and starting a fresh run.
type ScanRequest struct {
	DateRanges   []DateRange
	StoreID      string
	Windows      []TimeWindow
	PollInterval time.Duration
}

// Validate rejects requests the scan loop must never start with.
func (r ScanRequest) Validate() error {
	if len(r.DateRanges) == 0 {
		return &ConfigError{Reason: "no date ranges configured"}
	}
	if r.StoreID == "" {
		return &ConfigError{Reason: "no target store id"}
	}
	if len(r.Windows) == 0 {
		return &ConfigError{Reason: "no time windows configured"}
	}
	if r.PollInterval < MinPollInterval {
		return &ConfigError{Reason: fmt.Sprintf("poll interval %s below minimum %s", r.PollInterval, MinPollInterval)}
	}
	return nil
}

// BookingOutcome is the result of one booking attempt for one slot id.
type BookingOutcome struct {
	SlotID  string
	Success bool
}

// FetchFailure records a date range whose fetch failed this round.
type FetchFailure struct {
	Range DateRange
	Err   error
}

// RoundSummary describes one completed scan(+book) round.
type RoundSummary struct {
	Round            int
	DateRangesPolled int
	FetchFailures    []FetchFailure
	CandidatesFound  int
	Outcomes         []BookingOutcome
	Duration         time.Duration
}

// Booked counts the successful outcomes in the summary.
func (s RoundSummary) Booked() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Success {
			n++
		}
	}
	return n
}
