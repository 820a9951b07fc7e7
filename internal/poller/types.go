package poller

import (
	"context"
	"time"

	"github.com/angeloszaimis/lb-dashboard/internal/dashboard"
	"github.com/angeloszaimis/lb-dashboard/internal/snapshot"
)

// DefaultInterval is the poll cadence of the dashboard.
const DefaultInterval = 2 * time.Second

// Fetcher retrieves the current snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (*snapshot.Snapshot, error)
}

// Sink receives a frame after every tick that ran.
type Sink interface {
	Present(Frame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Frame)

func (f SinkFunc) Present(frame Frame) { f(frame) }

// Config is the runtime config the poller needs.
type Config struct {
	Interval time.Duration
	Timeout  time.Duration
}

// State is retained between ticks.
type State struct {
	PreviousCounts map[string]int64
	MaxRequests    int64
}

// Frame is an immutable copy of everything a view shows.
type Frame struct {
	Board       dashboard.Board `json:"board"`
	Log         []string        `json:"log"`
	LogCount    string          `json:"log_count"`
	Placeholder bool            `json:"placeholder"`
	ActiveIndex int             `json:"active_index"`
	UpdatedAt   time.Time       `json:"updated_at"`
	LastError   string          `json:"last_error,omitempty"`
}

// Stale reports whether the most recent tick failed.
func (f Frame) Stale() bool {
	return f.LastError != ""
}
