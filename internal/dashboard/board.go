package dashboard

// Status is the label of a server card badge.
type Status string

const (
	StatusOnline  Status = "ONLINE"
	StatusActive  Status = "ACTIVE"
	StatusOffline Status = "OFFLINE"
)

// Summary holds the three scalar counters at the top of the dashboard.
type Summary struct {
	TotalRequests string `json:"total_requests"`
	Uptime        string `json:"uptime"`
	Servers       string `json:"servers"`
}

// Card is the widget for one backend.
type Card struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Status     Status `json:"status"`
	Requests   int64  `json:"requests"`
	BarPercent int    `json:"bar_percent"`
	Active     bool   `json:"active"`
	Offline    bool   `json:"offline"`
	Counting   bool   `json:"counting"`
}

// FlowNode is one node of the request-flow diagram. The first node is the
// balancer; each following node is reached by an edge from its predecessor.
type FlowNode struct {
	Label    string `json:"label"`
	Caption  string `json:"caption"`
	Balancer bool   `json:"balancer,omitempty"`
	Active   bool   `json:"active,omitempty"`
	Offline  bool   `json:"offline,omitempty"`
}

// Board is a copy of the rendered widget state.
type Board struct {
	Summary     Summary    `json:"summary"`
	Cards       []Card     `json:"cards"`
	Flow        []FlowNode `json:"flow"`
	ActiveIndex int        `json:"active_index"`
	Rebuilds    int        `json:"rebuilds"`
}

func cardStatus(active, offline bool) Status {
	switch {
	case offline:
		return StatusOffline
	case active:
		return StatusActive
	default:
		return StatusOnline
	}
}
