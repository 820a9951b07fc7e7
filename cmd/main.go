package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/angeloszaimis/lb-dashboard/config"
	"github.com/angeloszaimis/lb-dashboard/internal/dashboard"
	"github.com/angeloszaimis/lb-dashboard/internal/eventlog"
	"github.com/angeloszaimis/lb-dashboard/internal/fetcher"
	"github.com/angeloszaimis/lb-dashboard/internal/handler"
	"github.com/angeloszaimis/lb-dashboard/internal/httpserver"
	"github.com/angeloszaimis/lb-dashboard/internal/metrics"
	"github.com/angeloszaimis/lb-dashboard/internal/poller"
	"github.com/angeloszaimis/lb-dashboard/internal/tui"
	"github.com/angeloszaimis/lb-dashboard/pkg/logger"
)

const metricsBufferSize = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	out, closeLog, err := openLogOutput(cfg)
	if err != nil {
		slog.Error("failed to open log file", slog.String("file", cfg.Logging.File), slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment, out)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	err = run(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("Dashboard stopped with error", slog.Any("err", err))
	}
	_ = closeLog()

	if err != nil {
		os.Exit(1)
	}
}

// openLogOutput returns a nil writer (stdout) when headless. Otherwise the
// TUI owns the terminal and logs go to the configured file.
func openLogOutput(cfg *config.Config) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	if cfg.UI.Headless || cfg.Logging.File == "" {
		return nil, noop, nil
	}

	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, err
	}
	return f, f.Close, nil
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	collector := metrics.NewCollector(metricsBufferSize, log)
	collector.Start(ctx)

	slot := dashboard.NewActiveSlot()
	events := eventlog.New(cfg.EventLog.Capacity)

	p, err := newPoller(cfg, dashboard.NewRenderer(slot), events, collector, log)
	if err != nil {
		return fmt.Errorf("create poller: %w", err)
	}

	status := handler.NewStatusHandler(log, slot)
	p.AddSink(status)

	srv, err := httpserver.New(cfg.Server.Address, setupRouter(status, collector))
	if err != nil {
		return fmt.Errorf("create status server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	var program *tea.Program
	if !cfg.UI.Headless {
		program = tea.NewProgram(tui.NewModel(gctx, slot, p), tea.WithAltScreen(), tea.WithContext(gctx))
		p.AddSink(tui.NewSink(program))
	}

	g.Go(func() error {
		log.Info("Status API listening", slog.String("addr", cfg.Server.Address))
		return srv.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down gracefully...")
		return srv.Shutdown(context.Background())
	})

	g.Go(func() error {
		p.Run(gctx)
		return nil
	})

	if program != nil {
		g.Go(func() error {
			defer stop()

			_, err := program.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		})
	}

	err = g.Wait()
	stop()
	<-collector.Done()

	return err
}

func newPoller(cfg *config.Config, renderer *dashboard.Renderer, events *eventlog.Log, collector *metrics.Collector, log *slog.Logger) (*poller.Poller, error) {
	f, err := fetcher.New(cfg.Poll.Endpoint, cfg.PollTimeout())
	if err != nil {
		return nil, err
	}

	log.Info("Polling load balancer metrics", slog.String("endpoint", f.Endpoint()))

	return poller.New(poller.Config{
		Interval: cfg.PollInterval(),
		Timeout:  cfg.PollTimeout(),
	}, f, renderer, events, collector, log)
}
