package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/segyhp/yunta/internal/bootstrap"
	"github.com/segyhp/yunta/internal/config"
	"github.com/segyhp/yunta/internal/service"
	customError "github.com/segyhp/yunta/pkg/errors"
	"github.com/segyhp/yunta/pkg/logging"
	"github.com/segyhp/yunta/pkg/utils"
)

const jobTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("Starting junta scheduler...")

	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.Location()))
	if err := setupCronJobs(c, cfg, app.Service); err != nil {
		slog.Error("Failed to schedule jobs", "error", err)
		os.Exit(1)
	}

	c.Start()
	slog.Info("Scheduler started successfully", "jobs", len(c.Entries()))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	slog.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, svc service.Service) error {
	// Close elapsed days once the grace period is over
	if _, err := c.AddFunc(cfg.Scheduler.AutoCloseSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		autoCloseDays(ctx, svc)
	}); err != nil {
		return err
	}

	// Evening collection summary of the active junta
	if _, err := c.AddFunc(cfg.Scheduler.SummarySchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		logDailySummary(ctx, svc)
	}); err != nil {
		return err
	}

	slog.Info("Cron jobs scheduled",
		"auto_close", cfg.Scheduler.AutoCloseSchedule,
		"summary", cfg.Scheduler.SummarySchedule)
	return nil
}

func autoCloseDays(ctx context.Context, svc service.Service) {
	closed, err := svc.AutoCloseElapsedDays(ctx)
	if err != nil {
		slog.Error("Auto-close job failed", "error", err)
		return
	}
	slog.Info("Auto-close job finished", "closed", closed)
}

func logDailySummary(ctx context.Context, svc service.Service) {
	state, err := svc.GetActiveJunta(ctx)
	if errors.Is(err, customError.ErrJuntaNotFound) {
		slog.Info("No active junta, skipping daily summary")
		return
	}
	if err != nil {
		slog.Error("Daily summary job failed", "error", err)
		return
	}

	today := svc.Today()
	summary, err := svc.GetDailySummary(ctx, state.Junta.ID, today)
	if err != nil {
		slog.Error("Daily summary job failed", "junta_id", state.Junta.ID, "error", err)
		return
	}

	slog.Info("Daily summary",
		"junta_id", state.Junta.ID,
		"date", utils.FormatDate(today),
		"turn", summary.TurnNumber,
		"expected", summary.Expected.StringFixed(2),
		"collected", summary.Collected.StringFixed(2),
		"pending", summary.Pending.StringFixed(2),
		"closed", summary.IsClosed)
}
