// Package metrics records how the dashboard client itself is doing: polls
// that succeeded or failed, ticks skipped by the reentrancy guard, card
// rebuilds, and the routing events inferred per backend.
//
// Events flow through a buffered channel into a single collector goroutine so
// the polling loop never blocks on bookkeeping. Each event updates both an
// in-memory aggregate, served as JSON, and Prometheus collectors on a private
// registry.
//
// Example usage:
//
//	collector := metrics.NewCollector(256, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:     metrics.EventPollSucceeded,
//		Duration: 12 * time.Millisecond,
//	})
//
//	stats := collector.Stats()
//
// On shutdown the collector drains queued events before stopping.
package metrics
