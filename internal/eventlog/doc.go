// Package eventlog keeps the bounded, newest-first feed of routing events
// shown under the dashboard.
package eventlog
