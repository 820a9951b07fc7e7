package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/angeloszaimis/lb-dashboard/internal/poller"
)

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Sink forwards poller frames into a running program.
type Sink struct {
	sender Sender
}

func NewSink(sender Sender) *Sink {
	return &Sink{sender: sender}
}

func (s *Sink) Present(f poller.Frame) {
	s.sender.Send(FrameMsg(f))
}
