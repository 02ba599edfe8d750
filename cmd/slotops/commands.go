package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"slotops-service/internal/booking"
	"slotops-service/internal/config"
	"slotops-service/internal/domain/slots"
	"slotops-service/internal/logging"
	"slotops-service/internal/metrics"
	"slotops-service/internal/providers/storeops"
	"slotops-service/internal/scanner"
	"slotops-service/internal/timeutil"
)

// Preset windows offered by the original menu; --all-windows selects them.
var presetWindows = []string{
	"08:00-10:00", "10:00-12:00", "12:00-14:00", "14:00-16:00",
	"16:00-18:00", "18:00-20:00", "20:00-22:00", "22:00-23:59",
}

type scanOptions struct {
	dates      []string
	storeID    string
	windows    []string
	allWindows bool
	interval   time.Duration
}

func createScanCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Continuously scan the given dates and book every matching slot",
		Long: `Scan polls every requested date in parallel, filters the returned slots
against the target store and accepted time windows, and books each match
as soon as it appears. The loop runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = args
			return runScan(cfg, logger, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.dates, "date", "d", nil, "Target date (YYYY-MM-DD), repeatable")
	cmd.Flags().StringVarP(&opts.storeID, "store", "s", "", "Target store id (defaults to TARGET_STORE_ID)")
	cmd.Flags().StringSliceVarP(&opts.windows, "window", "w", nil, "Accepted time window (HH:MM-HH:MM, IST), repeatable")
	cmd.Flags().BoolVar(&opts.allWindows, "all-windows", false, "Accept every preset window")
	cmd.Flags().DurationVarP(&opts.interval, "interval", "i", 0, "Poll interval (defaults to POLL_INTERVAL)")
	return cmd
}

func runScan(cfg config.Config, logger *slog.Logger, opts scanOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder, err := startMetrics(ctx, cfg, logger)
	if err != nil {
		return err
	}

	ranges, err := slots.RangesForDates(opts.dates, cfg.MaxDates)
	if err != nil {
		return err
	}

	windowSpecs := opts.windows
	if opts.allWindows {
		windowSpecs = presetWindows
	}
	windows := make([]slots.TimeWindow, 0, len(windowSpecs))
	for _, spec := range windowSpecs {
		w, parseErr := slots.ParseWindow(spec)
		if parseErr != nil {
			return parseErr
		}
		windows = append(windows, w)
	}

	storeID := opts.storeID
	if storeID == "" {
		storeID = cfg.TargetStoreID
	}
	interval := opts.interval
	if interval == 0 {
		interval = cfg.PollInterval
	}

	client := buildClient(cfg)
	booker := booking.New(client, logger, recorder)
	scan := scanner.New(client, booker, logger, recorder)

	go reportSummaries(scan.Summaries(), logger)

	req := slots.ScanRequest{
		DateRanges:   ranges,
		StoreID:      storeID,
		Windows:      windows,
		PollInterval: interval,
	}
	if err := scan.Start(ctx, req); err != nil {
		return err
	}
	scan.Wait()
	return nil
}

func reportSummaries(summaries <-chan slots.RoundSummary, logger *slog.Logger) {
	for summary := range summaries {
		args := []any{
			slog.Int(logging.FieldRound, summary.Round),
			slog.Int("date_ranges", summary.DateRangesPolled),
			slog.Int("candidates", summary.CandidatesFound),
			slog.Int("booked", summary.Booked()),
			slog.Int("fetch_failures", len(summary.FetchFailures)),
			slog.Int64(logging.FieldDurationMS, summary.Duration.Milliseconds()),
		}
		if summary.CandidatesFound > 0 || len(summary.FetchFailures) > 0 {
			logging.Info(logger, "round complete", args...)
		} else if logger != nil {
			logger.Debug("round complete", args...)
		}
	}
}

func createBookCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	var combined bool

	cmd := &cobra.Command{
		Use:   "book SLOT_ID...",
		Short: "Book the given slot ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ids := splitIDs(args)
			booker := booking.New(buildClient(cfg), logger, nil)

			if combined {
				if !booker.BookCombined(ctx, ids) {
					return fmt.Errorf("combined booking of %d slot(s) failed", len(ids))
				}
				cmd.Printf("booked %d slot(s)\n", len(ids))
				return nil
			}

			booked := 0
			for _, outcome := range booker.BookIndividually(ctx, ids) {
				status := "failed"
				if outcome.Success {
					status = "booked"
					booked++
				}
				cmd.Printf("%s: %s\n", outcome.SlotID, status)
			}
			if booked == 0 {
				return fmt.Errorf("no slots booked")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&combined, "combined", false, "Submit all ids in a single request")
	return cmd
}

func createCancelCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel SLOT_ID...",
		Short: "Cancel the given slot ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ids := splitIDs(args)
			booker := booking.New(buildClient(cfg), logger, nil)
			if !booker.Cancel(ctx, ids) {
				return fmt.Errorf("cancellation of %d slot(s) failed", len(ids))
			}
			cmd.Printf("cancelled %d slot(s)\n", len(ids))
			return nil
		},
	}
}

func createSlotsCommand(cfg config.Config) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the slots visible for one date",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = args
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dateRange, err := slots.RangeForDate(date)
			if err != nil {
				return err
			}

			listings, err := buildClient(cfg).ListStores(ctx, dateRange)
			if err != nil {
				return err
			}
			if len(listings) == 0 {
				cmd.Println("no stores returned")
				return nil
			}

			for _, store := range listings {
				cmd.Printf("STORE %s  %s (%s)\n", store.ID, store.Name, store.Address)
				if len(store.Slots) == 0 {
					cmd.Println("  no slots")
					continue
				}
				for _, slot := range store.Slots {
					status := "available"
					if slot.IsBooked {
						status = "booked"
					}
					cancellable := "no"
					if slot.Cancellable {
						cancellable = "yes"
					}
					cmd.Printf("  %s-%s  id=%s  payout=%.0f-%.0f  %s  cancellable=%s\n",
						formatSlotClock(slot.StartTime), formatSlotClock(slot.EndTime),
						slot.ID, slot.MinPayout, slot.MaxPayout, status, cancellable)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date to list (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func createSettingsCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the configured identity (tokens masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = args
			cmd.Printf("%-18s %s\n", "Device ID", valueOrUnset(cfg.Storeops.DeviceID))
			cmd.Printf("%-18s %s\n", "Employee ID", valueOrUnset(cfg.Storeops.EmployeeID))
			cmd.Printf("%-18s %s\n", "Site ID", valueOrUnset(cfg.Storeops.SiteID))
			cmd.Printf("%-18s %s\n", "User ID", valueOrUnset(cfg.Storeops.UserID))
			cmd.Printf("%-18s %s\n", "Phone number", valueOrUnset(cfg.Storeops.PhoneNumber))
			cmd.Printf("%-18s %s\n", "Target store", valueOrUnset(cfg.TargetStoreID))
			cmd.Printf("%-18s %s\n", "Auth token", maskToken(cfg.Storeops.AuthToken))
			cmd.Printf("%-18s %s\n", "Session token", maskToken(cfg.Storeops.SessionToken))
			cmd.Printf("%-18s %.7f, %.5f\n", "Location", cfg.Storeops.Latitude, cfg.Storeops.Longitude)
			return nil
		},
	}
}

func buildClient(cfg config.Config) *storeops.Client {
	lat := strconv.FormatFloat(cfg.Storeops.Latitude, 'f', -1, 64)
	long := strconv.FormatFloat(cfg.Storeops.Longitude, 'f', -1, 64)
	return storeops.NewClient(storeops.Config{
		BaseURL:   cfg.Storeops.BaseURL,
		Latitude:  cfg.Storeops.Latitude,
		Longitude: cfg.Storeops.Longitude,
		Identity: storeops.Identity{
			DeviceID:         cfg.Storeops.DeviceID,
			EmployeeID:       cfg.Storeops.EmployeeID,
			SiteID:           cfg.Storeops.SiteID,
			UserID:           cfg.Storeops.UserID,
			PhoneNumber:      cfg.Storeops.PhoneNumber,
			Role:             cfg.Storeops.Role,
			AuthToken:        cfg.Storeops.AuthToken,
			SessionToken:     cfg.Storeops.SessionToken,
			HTTPSessionToken: cfg.Storeops.HTTPSessionToken,
			AppVersion:       cfg.Storeops.AppVersion,
			UserAgent:        cfg.Storeops.UserAgent,
			Latitude:         lat,
			Longitude:        long,
		},
	})
}

func startMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.Recorder, error) {
	recorder, handler, shutdown, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		return nil, err
	}

	if handler != nil {
		srv := &http.Server{Addr: ":" + cfg.Metrics.Port, Handler: handler}
		go func() {
			if serveErr := srv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
				logging.Error(logger, "metrics server failed", serveErr)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
			_ = shutdown(shutdownCtx)
		}()
	}
	return recorder, nil
}

func splitIDs(args []string) []string {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				ids = append(ids, trimmed)
			}
		}
	}
	return ids
}

func formatSlotClock(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return timeutil.FormatClock(t)
}

func valueOrUnset(v string) string {
	if v == "" {
		return "not set"
	}
	return v
}

func maskToken(v string) string {
	if v == "" {
		return "not set"
	}
	if len(v) <= 8 {
		return "****"
	}
	return v[:4] + "..." + v[len(v)-4:]
}
