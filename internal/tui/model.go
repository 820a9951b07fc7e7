package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/angeloszaimis/lb-dashboard/internal/poller"
)

// PulseInterval is the cadence of the flow animation.
const PulseInterval = 150 * time.Millisecond

// ActiveReader exposes the last published active index.
type ActiveReader interface {
	Load() int
}

// Refresher runs an out-of-band poll.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// FrameMsg carries a new frame into the program.
type FrameMsg poller.Frame

type pulseMsg time.Time

type refreshDoneMsg struct {
	err error
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx       context.Context
	active    ActiveReader
	refresher Refresher

	frame      *poller.Frame
	refreshErr error
	pulse      int
	help       help.Model
	width      int
}

func NewModel(ctx context.Context, active ActiveReader, refresher Refresher) Model {
	return Model{
		ctx:       ctx,
		active:    active,
		refresher: refresher,
		pulse:     -1,
		help:      help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return pulseEvery()
}

func pulseEvery() tea.Cmd {
	return tea.Tick(PulseInterval, func(t time.Time) tea.Msg {
		return pulseMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		f := poller.Frame(msg)
		m.frame = &f
		if !f.Stale() {
			m.refreshErr = nil
		}
		return m, nil

	case pulseMsg:
		m.pulse = nextPulse(m.pulse, m.active.Load())
		return m, pulseEvery()

	case refreshDoneMsg:
		m.refreshErr = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, keys.Refresh):
			return m, m.refresh()
		}
	}

	return m, nil
}

func (m Model) refresh() tea.Cmd {
	ctx, refresher := m.ctx, m.refresher
	return func() tea.Msg {
		return refreshDoneMsg{err: refresher.Refresh(ctx)}
	}
}

// nextPulse walks the pulse from the balancer towards the active node and
// starts over once it arrives. It hides when nothing is active.
func nextPulse(current, active int) int {
	if active < 0 {
		return -1
	}
	if current < 0 || current >= active {
		return 0
	}
	return current + 1
}

// Pulse returns the flow segment the pulse is on, or -1.
func (m Model) Pulse() int {
	return m.pulse
}

// Frame returns the frame being displayed, if any.
func (m Model) Frame() (poller.Frame, bool) {
	if m.frame == nil {
		return poller.Frame{}, false
	}
	return *m.frame, true
}
