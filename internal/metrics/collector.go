package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type EventType string

const (
	EventPollSucceeded   EventType = "poll_succeeded"
	EventPollFailed      EventType = "poll_failed"
	EventTickSkipped     EventType = "tick_skipped"
	EventRoutingObserved EventType = "routing_observed"
	EventCardsRebuilt    EventType = "cards_rebuilt"
)

const namespace = "lbdash"

type MetricEvent struct {
	Type      EventType
	Timestamp time.Time
	Server    string
	Delta     int64
	Duration  time.Duration
	Err       string
}

type Collector struct {
	eventCh  chan MetricEvent
	metrics  *Metrics
	logger   *slog.Logger
	registry *prometheus.Registry
	prom     promMetrics
	done     chan struct{}
}

type promMetrics struct {
	polls          *prometheus.CounterVec
	skipped        prometheus.Counter
	rebuilds       prometheus.Counter
	routingEvents  *prometheus.CounterVec
	routedRequests *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	lastSuccess    prometheus.Gauge
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	c := &Collector{
		eventCh:  make(chan MetricEvent, bufferSize),
		metrics:  NewMetrics(),
		logger:   logger,
		registry: prometheus.NewRegistry(),
		done:     make(chan struct{}),
		prom: promMetrics{
			polls: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace, Name: "polls_total", Help: "Metrics polls by result",
			}, []string{"result"}),
			skipped: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace, Name: "ticks_skipped_total", Help: "Ticks skipped because another tick was in flight",
			}),
			rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace, Name: "card_rebuilds_total", Help: "Structural rebuilds of the server card collection",
			}),
			routingEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace, Name: "routing_events_total", Help: "Cycles in which a server was the most active",
			}, []string{"server"}),
			routedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace, Name: "routed_requests_total", Help: "Sum of winning deltas per server",
			}, []string{"server"}),
			fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace, Name: "fetch_duration_seconds", Help: "Duration of metrics fetches",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
			}),
			lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace, Name: "last_success_timestamp_seconds", Help: "Unix timestamp of the last successful poll",
			}),
		},
	}

	c.registry.MustRegister(
		c.prom.polls,
		c.prom.skipped,
		c.prom.rebuilds,
		c.prom.routingEvents,
		c.prom.routedRequests,
		c.prom.fetchDuration,
		c.prom.lastSuccess,
	)

	return c
}

// Emit queues an event without blocking. Events are dropped when the buffer
// is full. A nil collector ignores events.
func (c *Collector) Emit(event MetricEvent) {
	if c == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case c.eventCh <- event:
	default:
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

// Done is closed once the collector has drained after ctx cancellation.
func (c *Collector) Done() <-chan struct{} {
	return c.done
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")
	defer close(c.done)

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventPollSucceeded:
		c.metrics.RecordPoll(event.Timestamp, event.Duration)
		c.prom.polls.WithLabelValues("success").Inc()
		c.prom.fetchDuration.Observe(event.Duration.Seconds())
		c.prom.lastSuccess.Set(float64(event.Timestamp.Unix()))

	case EventPollFailed:
		c.metrics.RecordFailure(event.Timestamp, event.Err)
		c.prom.polls.WithLabelValues("failure").Inc()

	case EventTickSkipped:
		c.metrics.RecordSkip()
		c.prom.skipped.Inc()

	case EventRoutingObserved:
		c.metrics.RecordRouting(event.Server, event.Delta)
		c.prom.routingEvents.WithLabelValues(event.Server).Inc()
		c.prom.routedRequests.WithLabelValues(event.Server).Add(float64(event.Delta))

	case EventCardsRebuilt:
		c.metrics.RecordRebuild()
		c.prom.rebuilds.Inc()
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Stats() Stats {
	return c.metrics.Stats()
}

// PrometheusHandler exposes the collector's private registry.
func (c *Collector) PrometheusHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
