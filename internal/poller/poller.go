package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/angeloszaimis/lb-dashboard/internal/dashboard"
	"github.com/angeloszaimis/lb-dashboard/internal/delta"
	"github.com/angeloszaimis/lb-dashboard/internal/eventlog"
	"github.com/angeloszaimis/lb-dashboard/internal/metrics"
	"github.com/angeloszaimis/lb-dashboard/internal/snapshot"
)

// ErrTickInFlight is returned when a tick is requested while another runs.
var ErrTickInFlight = errors.New("poller: tick already in flight")

// Poller owns the retained state, the renderer and the event log. Only the
// goroutine holding the busy flag touches them.
type Poller struct {
	cfg       Config
	fetcher   Fetcher
	renderer  *dashboard.Renderer
	events    *eventlog.Log
	collector *metrics.Collector
	logger    *slog.Logger
	sinks     []Sink

	busy      atomic.Bool
	state     State
	lastFrame atomic.Pointer[Frame]
	updatedAt time.Time
}

// New creates a poller. collector may be nil.
func New(cfg Config, fetcher Fetcher, renderer *dashboard.Renderer, events *eventlog.Log, collector *metrics.Collector, logger *slog.Logger) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.Timeout <= 0 || cfg.Timeout >= cfg.Interval {
		return nil, errors.New("poller: timeout must be > 0 and shorter than the interval")
	}
	if fetcher == nil || renderer == nil || events == nil || logger == nil {
		return nil, errors.New("poller: fetcher, renderer, event log and logger are required")
	}

	p := &Poller{
		cfg:       cfg,
		fetcher:   fetcher,
		renderer:  renderer,
		events:    events,
		collector: collector,
		logger:    logger,
		state: State{
			PreviousCounts: make(map[string]int64),
			MaxRequests:    1,
		},
	}
	p.storeFrame(p.frame())

	return p, nil
}

// AddSink registers a sink. Call before Run.
func (p *Poller) AddSink(s Sink) {
	p.sinks = append(p.sinks, s)
}

// Run ticks immediately and then once per interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("Polling started",
		slog.Duration("interval", p.cfg.Interval),
		slog.Duration("timeout", p.cfg.Timeout))

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.tickOrSkip(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Polling stopped")
			return
		case <-ticker.C:
			p.tickOrSkip(ctx)
		}
	}
}

// Refresh runs an out-of-band tick, e.g. from a key press.
func (p *Poller) Refresh(ctx context.Context) error {
	return p.Tick(ctx)
}

func (p *Poller) tickOrSkip(ctx context.Context) {
	if err := p.Tick(ctx); errors.Is(err, ErrTickInFlight) {
		p.logger.Debug("Skipping tick, previous tick still running")
	}
}

// Tick performs exactly one cycle. A fetch failure is returned after the
// unchanged frame, annotated with the error, has been presented.
func (p *Poller) Tick(ctx context.Context) error {
	if !p.busy.CompareAndSwap(false, true) {
		p.collector.Emit(metrics.MetricEvent{Type: metrics.EventTickSkipped})
		return ErrTickInFlight
	}
	defer p.busy.Store(false)

	fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	snap, err := p.fetcher.Fetch(fetchCtx)
	elapsed := time.Since(start)

	if err != nil {
		p.logger.Warn("Metrics fetch failed, keeping previous state",
			slog.Duration("elapsed", elapsed),
			slog.Any("err", err))
		p.collector.Emit(metrics.MetricEvent{Type: metrics.EventPollFailed, Err: err.Error()})

		stale := p.LastFrame()
		stale.LastError = err.Error()
		p.present(stale)
		return err
	}

	p.apply(snap)
	p.collector.Emit(metrics.MetricEvent{Type: metrics.EventPollSucceeded, Duration: elapsed})

	f := p.frame()
	p.storeFrame(f)
	p.present(f)
	return nil
}

func (p *Poller) apply(snap *snapshot.Snapshot) {
	p.renderer.RenderSummary(snap)

	res := delta.Compute(p.state.PreviousCounts, snap)
	p.state.MaxRequests = snap.MaxRequests()

	if p.renderer.Render(snap, res, p.state.MaxRequests) {
		p.logger.Debug("Rebuilt server cards", slog.Int("servers", len(snap.Servers)))
		p.collector.Emit(metrics.MetricEvent{Type: metrics.EventCardsRebuilt})
	}

	if res.HasWinner() && p.events.Record(res.Winner, res.WinnerDelta) {
		p.logger.Debug("Routing observed",
			slog.String("server", res.Winner),
			slog.Int64("delta", res.WinnerDelta))
		p.collector.Emit(metrics.MetricEvent{
			Type:   metrics.EventRoutingObserved,
			Server: res.Winner,
			Delta:  res.WinnerDelta,
		})
	}

	for _, srv := range snap.Servers {
		p.state.PreviousCounts[srv.Name] = srv.Requests
	}
	p.updatedAt = time.Now()
}

func (p *Poller) frame() Frame {
	board := p.renderer.Board()
	return Frame{
		Board:       board,
		Log:         p.events.Lines(),
		LogCount:    p.events.CountLabel(),
		Placeholder: p.events.HasPlaceholder(),
		ActiveIndex: board.ActiveIndex,
		UpdatedAt:   p.updatedAt,
	}
}

func (p *Poller) present(f Frame) {
	for _, s := range p.sinks {
		s.Present(f)
	}
}

// State returns a copy of the retained state. It must not be called while a
// tick is running.
func (p *Poller) State() State {
	counts := make(map[string]int64, len(p.state.PreviousCounts))
	for k, v := range p.state.PreviousCounts {
		counts[k] = v
	}
	return State{PreviousCounts: counts, MaxRequests: p.state.MaxRequests}
}

// LastFrame returns the frame of the last successful tick, or the initial
// empty frame (placeholder log, zero UpdatedAt) before any tick succeeded.
// It never carries LastError and is safe to call while a tick runs.
func (p *Poller) LastFrame() Frame {
	return *p.lastFrame.Load()
}

func (p *Poller) storeFrame(f Frame) {
	p.lastFrame.Store(&f)
}
