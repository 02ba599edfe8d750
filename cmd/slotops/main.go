package main

import (
	"os"

	"github.com/spf13/cobra"

	"slotops-service/internal/config"
	"slotops-service/internal/logging"
)

const appVersion = "dev"

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "slotops-service",
		Version: appVersion,
	})

	root := &cobra.Command{
		Use:           "slotops",
		Short:         "Scan and book storeops delivery slots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		createScanCommand(cfg, logger),
		createBookCommand(cfg, logger),
		createCancelCommand(cfg, logger),
		createSlotsCommand(cfg),
		createSettingsCommand(cfg),
	)

	if err := root.Execute(); err != nil {
		logging.Error(logger, "command failed", err)
		os.Exit(1)
	}
}
