package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/kshitij-139/GEM-JD/internal/scheduler"
	"github.com/kshitij-139/GEM-JD/internal/server"
	"github.com/kshitij-139/GEM-JD/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form and JSON API",
	Long:  "Serve the HTML form and /api/v1 endpoints; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"provider", cfg.AI.Provider,
		"model", cfg.AI.Model,
		"brand", cfg.Generation.Brand,
		"addr", cfg.Server.Addr,
		"session_ttl", cfg.Server.SessionTTL.String(),
		"history", cfg.History.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, history, closeHistory, err := setupService(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("set up generator: %w", err)
	}
	defer closeHistory()

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := session.NewManager()
	srv := server.New(svc, sessions, server.Options{
		Brand:              cfg.Generation.Brand,
		DefaultTemperature: cfg.Generation.DefaultTemperature,
		SessionTTL:         cfg.Server.SessionTTL,
	}, logger)

	tasks := []scheduler.Task{server.SessionSweepTask(sessions, cfg.Server.SessionTTL, logger)}
	if cfg.History.Enabled && cfg.History.Retention > 0 {
		tasks = append(tasks, server.HistoryRetentionTask(history, cfg.History.Retention, logger))
	}
	sched := scheduler.NewScheduler(tasks, max(cfg.Server.SessionTTL/2, time.Second), logger)
	go sched.Run(ctx)

	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	logger.Info("goodbye")
	return nil
}
