package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kshitij-139/GEM-JD/internal/generator"
	"github.com/kshitij-139/GEM-JD/internal/session"
	"github.com/kshitij-139/GEM-JD/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal form",
	Long:  "Runs the form in the terminal with side-by-side job description and FAQ panes.",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Any log output once the alt screen is up corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, _, closeHistory, err := setupService(context.Background(), cfg, silentLogger)
	if err != nil {
		logger.Error("failed to set up generator", "error", err)
		os.Exit(1)
	}
	defer closeHistory()

	defaults := generator.DefaultRequest(cfg.Generation.DefaultTemperature)
	if err := tui.Run(svc, session.New(), cfg.Generation.Brand, defaults); err != nil {
		fmt.Printf("TUI error: %v\n", err)
	}
	return nil
}
