package metrics

import (
	"sort"
	"sync"
	"time"
)

const maxFetchSamples = 1000

type Metrics struct {
	mutex          sync.RWMutex
	polls          int64
	failures       int64
	skipped        int64
	rebuilds       int64
	routingEvents  map[string]int64
	routedRequests map[string]int64
	fetchTimes     []time.Duration
	lastSuccess    time.Time
	lastFailure    time.Time
	lastError      string
	startTime      time.Time
}

type Stats struct {
	Polls       int64                  `json:"polls"`
	Failures    int64                  `json:"failures"`
	Skipped     int64                  `json:"skipped"`
	Rebuilds    int64                  `json:"rebuilds"`
	Uptime      time.Duration          `json:"uptime"`
	LastSuccess time.Time              `json:"last_success"`
	LastFailure time.Time              `json:"last_failure"`
	LastError   string                 `json:"last_error,omitempty"`
	Fetch       FetchStats             `json:"fetch"`
	Servers     map[string]ServerStats `json:"servers"`
}

type FetchStats struct {
	Samples int           `json:"samples"`
	Avg     time.Duration `json:"avg"`
	P50     time.Duration `json:"p50"`
	P95     time.Duration `json:"p95"`
	P99     time.Duration `json:"p99"`
}

type ServerStats struct {
	RoutingEvents  int64 `json:"routing_events"`
	RoutedRequests int64 `json:"routed_requests"`
}

func (m *Metrics) RecordPoll(at time.Time, duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.polls++
	m.lastSuccess = at
	m.fetchTimes = append(m.fetchTimes, duration)

	if len(m.fetchTimes) > maxFetchSamples {
		m.fetchTimes = m.fetchTimes[1:]
	}
}

func (m *Metrics) RecordFailure(at time.Time, reason string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.failures++
	m.lastFailure = at
	m.lastError = reason
}

func (m *Metrics) RecordSkip() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.skipped++
}

func (m *Metrics) RecordRebuild() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.rebuilds++
}

func (m *Metrics) RecordRouting(server string, delta int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.routingEvents[server]++
	m.routedRequests[server] += delta
}

func (m *Metrics) Stats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stats := Stats{
		Polls:       m.polls,
		Failures:    m.failures,
		Skipped:     m.skipped,
		Rebuilds:    m.rebuilds,
		Uptime:      time.Since(m.startTime),
		LastSuccess: m.lastSuccess,
		LastFailure: m.lastFailure,
		LastError:   m.lastError,
		Servers:     make(map[string]ServerStats, len(m.routingEvents)),
	}

	for server, events := range m.routingEvents {
		stats.Servers[server] = ServerStats{
			RoutingEvents:  events,
			RoutedRequests: m.routedRequests[server],
		}
	}

	if len(m.fetchTimes) > 0 {
		sorted := make([]time.Duration, len(m.fetchTimes))
		copy(sorted, m.fetchTimes)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})

		stats.Fetch = FetchStats{
			Samples: len(sorted),
			Avg:     average(sorted),
			P50:     percentile(sorted, 0.50),
			P95:     percentile(sorted, 0.95),
			P99:     percentile(sorted, 0.99),
		}
	}

	return stats
}

func NewMetrics() *Metrics {
	return &Metrics{
		routingEvents:  make(map[string]int64),
		routedRequests: make(map[string]int64),
		startTime:      time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
