package snapshot

// Snapshot is the balancer state observed at one poll.
type Snapshot struct {
	TotalRequests int64         `json:"total_requests"`
	UptimeSeconds float64       `json:"uptime_seconds"`
	Servers       []ServerEntry `json:"servers"`
}

// ServerEntry is one backend as reported by the balancer. Requests is a
// cumulative counter.
type ServerEntry struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Requests int64  `json:"requests"`
	Healthy  bool   `json:"healthy"`
}

// MaxRequests returns the largest request count across servers, floored at 1
// so it can be used as a divisor.
func (s *Snapshot) MaxRequests() int64 {
	max := int64(1)
	for _, srv := range s.Servers {
		if srv.Requests > max {
			max = srv.Requests
		}
	}
	return max
}

// HealthyCount returns how many servers the balancer reports as reachable.
func (s *Snapshot) HealthyCount() int {
	n := 0
	for _, srv := range s.Servers {
		if srv.Healthy {
			n++
		}
	}
	return n
}

// Counts returns the request counter of every server keyed by name.
func (s *Snapshot) Counts() map[string]int64 {
	counts := make(map[string]int64, len(s.Servers))
	for _, srv := range s.Servers {
		counts[srv.Name] = srv.Requests
	}
	return counts
}
