package dashboard

import (
	"fmt"

	"github.com/angeloszaimis/lb-dashboard/internal/delta"
	"github.com/angeloszaimis/lb-dashboard/internal/snapshot"
)

// Renderer owns the widget state. It is not safe for concurrent use; callers
// read it through Board, which returns a copy.
type Renderer struct {
	summary     Summary
	cards       []Card
	flow        []FlowNode
	activeIndex int
	rebuilds    int
	publisher   Publisher
}

// NewRenderer creates an empty renderer. publisher may be nil.
func NewRenderer(publisher Publisher) *Renderer {
	return &Renderer{
		activeIndex: delta.NoWinner,
		publisher:   publisher,
	}
}

// RenderSummary recomputes the scalar counters.
func (r *Renderer) RenderSummary(snap *snapshot.Snapshot) {
	r.summary = Summary{
		TotalRequests: FormatCount(snap.TotalRequests),
		Uptime:        FormatUptime(snap.UptimeSeconds),
		Servers:       fmt.Sprintf("%d / %d", snap.HealthyCount(), len(snap.Servers)),
	}
}

// Render brings cards and the flow diagram in line with snap and publishes
// the active index. maxRequests scales the bars. It reports whether the card
// collection was rebuilt.
func (r *Renderer) Render(snap *snapshot.Snapshot, res delta.Result, maxRequests int64) bool {
	rebuilt := r.reconcile(snap.Servers)

	for i, srv := range snap.Servers {
		active := i == res.WinnerIndex
		offline := !srv.Healthy

		card := &r.cards[i]
		card.URL = srv.URL
		card.Status = cardStatus(active, offline)
		card.Active = active
		card.Offline = offline
		card.Counting = active
		card.Requests = srv.Requests
		card.BarPercent = BarPercent(srv.Requests, maxRequests)
	}

	r.renderFlow(snap.Servers, res)

	r.activeIndex = res.WinnerIndex
	if r.publisher != nil {
		r.publisher.Publish(res.WinnerIndex)
	}

	return rebuilt
}

// reconcile rebuilds the card collection when the ordered set of backends
// differs from what is rendered.
func (r *Renderer) reconcile(servers []snapshot.ServerEntry) bool {
	if !r.needsRebuild(servers) {
		return false
	}

	r.cards = make([]Card, len(servers))
	for i, srv := range servers {
		r.cards[i] = Card{
			Name:   srv.Name,
			URL:    srv.URL,
			Status: StatusOnline,
		}
	}
	r.rebuilds++

	return true
}

func (r *Renderer) needsRebuild(servers []snapshot.ServerEntry) bool {
	if r.cards == nil || len(r.cards) != len(servers) {
		return true
	}
	for i, srv := range servers {
		if r.cards[i].Name != srv.Name {
			return true
		}
	}
	return false
}

func (r *Renderer) renderFlow(servers []snapshot.ServerEntry, res delta.Result) {
	flow := make([]FlowNode, 0, len(servers)+1)
	flow = append(flow, FlowNode{Label: "LB", Caption: "Balancer", Balancer: true})

	for i, srv := range servers {
		flow = append(flow, FlowNode{
			Label:   fmt.Sprintf("%d", i+1),
			Caption: srv.Name,
			Active:  i == res.WinnerIndex,
			Offline: !srv.Healthy,
		})
	}

	r.flow = flow
}

// Board returns a deep copy of the current widget state.
func (r *Renderer) Board() Board {
	b := Board{
		Summary:     r.summary,
		ActiveIndex: r.activeIndex,
		Rebuilds:    r.rebuilds,
	}
	if r.cards != nil {
		b.Cards = append([]Card(nil), r.cards...)
	}
	if r.flow != nil {
		b.Flow = append([]FlowNode(nil), r.flow...)
	}
	return b
}
