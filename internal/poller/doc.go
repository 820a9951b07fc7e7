// Package poller runs the dashboard's fixed-cadence cycle: fetch a snapshot,
// diff it against the retained counters, update the widgets and the event
// log, then hand a copy of the result to every registered sink.
//
// A failed fetch leaves all retained state untouched; the next tick is the
// retry. At most one tick runs at a time.
package poller
