package dashboard

import (
	"sync/atomic"

	"github.com/angeloszaimis/lb-dashboard/internal/delta"
)

// Publisher receives the active server index once per successful cycle.
type Publisher interface {
	Publish(index int)
}

// ActiveSlot is a last-value-wins Publisher safe for concurrent readers.
type ActiveSlot struct {
	index atomic.Int64
}

func NewActiveSlot() *ActiveSlot {
	s := &ActiveSlot{}
	s.index.Store(delta.NoWinner)
	return s
}

func (s *ActiveSlot) Publish(index int) {
	s.index.Store(int64(index))
}

// Load returns the last published index or delta.NoWinner.
func (s *ActiveSlot) Load() int {
	return int(s.index.Load())
}
