package dashboard_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/lb-dashboard/internal/dashboard"
	"github.com/angeloszaimis/lb-dashboard/internal/delta"
	"github.com/angeloszaimis/lb-dashboard/internal/snapshot"
)

func server(name string, requests int64, healthy bool) snapshot.ServerEntry {
	return snapshot.ServerEntry{Name: name, URL: "http://" + name, Requests: requests, Healthy: healthy}
}

var _ = Describe("Renderer", func() {
	var (
		renderer *dashboard.Renderer
		slot     *dashboard.ActiveSlot
		prev     map[string]int64
	)

	render := func(s *snapshot.Snapshot) (bool, delta.Result) {
		res := delta.Compute(prev, s)
		renderer.RenderSummary(s)
		rebuilt := renderer.Render(s, res, s.MaxRequests())
		prev = s.Counts()
		return rebuilt, res
	}

	BeforeEach(func() {
		slot = dashboard.NewActiveSlot()
		renderer = dashboard.NewRenderer(slot)
		prev = map[string]int64{}
	})

	Describe("NewRenderer", func() {
		It("should start empty with no active server", func() {
			board := renderer.Board()
			Expect(board.Cards).To(BeEmpty())
			Expect(board.Flow).To(BeEmpty())
			Expect(board.ActiveIndex).To(Equal(delta.NoWinner))
			Expect(slot.Load()).To(Equal(delta.NoWinner))
		})
	})

	Describe("RenderSummary", func() {
		It("should format the scalar counters", func() {
			renderer.RenderSummary(&snapshot.Snapshot{
				TotalRequests: 12345,
				UptimeSeconds: 3725.4,
				Servers:       []snapshot.ServerEntry{server("A", 1, true), server("B", 1, false), server("C", 1, true)},
			})

			Expect(renderer.Board().Summary).To(Equal(dashboard.Summary{
				TotalRequests: "12,345",
				Uptime:        "1h 2m",
				Servers:       "2 / 3",
			}))
		})
	})

	Describe("Render", func() {
		It("should mark the winner active and leave others online", func() {
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 10, true), server("B", 5, true)}})
			_, res := render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 15, true), server("B", 5, true)}})

			Expect(res.Winner).To(Equal("A"))
			Expect(res.WinnerDelta).To(Equal(int64(5)))

			board := renderer.Board()
			Expect(board.Cards[0].Status).To(Equal(dashboard.StatusActive))
			Expect(board.Cards[0].Active).To(BeTrue())
			Expect(board.Cards[0].Counting).To(BeTrue())
			Expect(board.Cards[1].Status).To(Equal(dashboard.StatusOnline))
			Expect(board.Cards[1].Active).To(BeFalse())
			Expect(board.ActiveIndex).To(Equal(0))
			Expect(slot.Load()).To(Equal(0))
		})

		It("should let offline take precedence over active", func() {
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 0, true), server("B", 0, true)}})
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 0, true), server("B", 9, false)}})

			board := renderer.Board()
			Expect(board.Cards[1].Status).To(Equal(dashboard.StatusOffline))
			Expect(board.Cards[1].Active).To(BeTrue())
			Expect(board.Cards[1].Offline).To(BeTrue())
			Expect(board.Flow[2].Offline).To(BeTrue())
			Expect(board.Flow[2].Active).To(BeTrue())
		})

		It("should scale bars against the busiest server", func() {
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 50, true), server("B", 200, true)}})

			board := renderer.Board()
			Expect(board.Cards[0].BarPercent).To(Equal(25))
			Expect(board.Cards[1].BarPercent).To(Equal(100))
			Expect(board.Cards[0].Requests).To(Equal(int64(50)))
		})

		It("should publish no winner when nothing moved", func() {
			s := &snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 3, true)}}
			render(s)
			Expect(slot.Load()).To(Equal(0))

			render(s)
			Expect(slot.Load()).To(Equal(delta.NoWinner))
			Expect(renderer.Board().Cards[0].Status).To(Equal(dashboard.StatusOnline))
		})

		It("should mark at most one card active even with repeated names", func() {
			s := &snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 0, true), server("A", 5, true)}}
			render(s)

			board := renderer.Board()
			active := 0
			for _, c := range board.Cards {
				if c.Active {
					active++
				}
			}
			Expect(active).To(Equal(1))
			Expect(board.Cards[1].Active).To(BeTrue())
			Expect(board.Flow[1].Active).To(BeFalse())
			Expect(board.Flow[2].Active).To(BeTrue())
		})

		It("should accept a nil publisher", func() {
			r := dashboard.NewRenderer(nil)
			s := &snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 3, true)}}
			Expect(func() { r.Render(s, delta.Compute(nil, s), s.MaxRequests()) }).NotTo(Panic())
		})
	})

	Describe("Structural reconciliation", func() {
		It("should build cards on the first render", func() {
			rebuilt, _ := render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 1, true), server("B", 1, true)}})
			Expect(rebuilt).To(BeTrue())
			Expect(renderer.Board().Rebuilds).To(Equal(1))
		})

		It("should patch in place while the backend set is stable", func() {
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 1, true), server("B", 1, true)}})

			for i := int64(2); i < 10; i++ {
				rebuilt, _ := render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", i, true), server("B", i, i%2 == 0)}})
				Expect(rebuilt).To(BeFalse())
			}

			board := renderer.Board()
			Expect(board.Rebuilds).To(Equal(1))
			Expect(board.Cards[0].Requests).To(Equal(int64(9)))
			Expect(board.Cards[1].Offline).To(BeTrue())
		})

		It("should rebuild cards and flow in order when a server is added", func() {
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 1, true), server("B", 1, true)}})
			rebuilt, _ := render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 1, true), server("B", 1, true), server("C", 4, true)}})

			Expect(rebuilt).To(BeTrue())
			board := renderer.Board()
			Expect(board.Rebuilds).To(Equal(2))
			Expect(board.Cards).To(HaveLen(3))
			Expect([]string{board.Cards[0].Name, board.Cards[1].Name, board.Cards[2].Name}).To(Equal([]string{"A", "B", "C"}))
			Expect(board.Cards[2].URL).To(Equal("http://C"))
			Expect(board.Cards[2].Status).To(Equal(dashboard.StatusActive))

			Expect(board.Flow).To(HaveLen(4))
			Expect(board.Flow[0]).To(Equal(dashboard.FlowNode{Label: "LB", Caption: "Balancer", Balancer: true}))
			Expect(board.Flow[1].Label).To(Equal("1"))
			Expect(board.Flow[3].Label).To(Equal("3"))
			Expect(board.Flow[3].Caption).To(Equal("C"))
			Expect(board.Flow[3].Active).To(BeTrue())
		})

		It("should rebuild when a server is removed", func() {
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 1, true), server("B", 1, true)}})
			rebuilt, _ := render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("B", 1, true)}})

			Expect(rebuilt).To(BeTrue())
			Expect(renderer.Board().Cards).To(HaveLen(1))
			Expect(renderer.Board().Cards[0].Name).To(Equal("B"))
		})

		It("should rebuild when backends are swapped at equal cardinality", func() {
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 1, true), server("B", 1, true)}})
			rebuilt, _ := render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 1, true), server("Z", 1, true)}})

			Expect(rebuilt).To(BeTrue())
			Expect(renderer.Board().Cards[1].Name).To(Equal("Z"))
		})

		It("should rebuild the flow diagram every cycle", func() {
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 0, true), server("B", 0, true)}})
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 2, true), server("B", 0, true)}})
			Expect(renderer.Board().Flow[1].Active).To(BeTrue())

			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 2, true), server("B", 3, true)}})
			flow := renderer.Board().Flow
			Expect(flow[1].Active).To(BeFalse())
			Expect(flow[2].Active).To(BeTrue())
		})
	})

	Describe("Board", func() {
		It("should return an independent copy", func() {
			render(&snapshot.Snapshot{Servers: []snapshot.ServerEntry{server("A", 1, true)}})

			board := renderer.Board()
			board.Cards[0].Name = "tampered"
			board.Flow[0].Label = "tampered"

			Expect(renderer.Board().Cards[0].Name).To(Equal("A"))
			Expect(renderer.Board().Flow[0].Label).To(Equal("LB"))
		})
	})
})
