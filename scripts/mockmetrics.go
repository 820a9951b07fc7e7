// Mockmetrics serves a fake load balancer /metrics document for local
// dashboard runs. Every interval one server, picked round-robin with some
// jitter, receives a burst of requests.
//
// Usage:
//
//	go run mockmetrics.go -port 8000 -servers 3
//	go run mockmetrics.go -port 8000 -servers 4 -down 2 -interval 500ms
//
// The dashboard's default poll.endpoint points at http://localhost:8000/metrics.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"
)

// ServerStat is one backend entry in the metrics document.
type ServerStat struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Requests int64  `json:"requests"`
	Healthy  bool   `json:"healthy"`
}

// MetricsDocument mirrors what the load balancer exposes on /metrics.
type MetricsDocument struct {
	TotalRequests int64        `json:"total_requests"`
	UptimeSeconds float64      `json:"uptime_seconds"`
	Servers       []ServerStat `json:"servers"`
}

type traffic struct {
	mutex   sync.Mutex
	started time.Time
	servers []ServerStat
	next    int
}

func newTraffic(count, down int) *traffic {
	t := &traffic{started: time.Now()}
	for i := 0; i < count; i++ {
		t.servers = append(t.servers, ServerStat{
			Name:    fmt.Sprintf("server-%d", i+1),
			URL:     fmt.Sprintf("http://localhost:%d", 8081+i),
			Healthy: i+1 != down,
		})
	}
	return t
}

// route sends a burst to the next healthy server.
func (t *traffic) route() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for range t.servers {
		i := t.next
		t.next = (t.next + 1) % len(t.servers)
		if !t.servers[i].Healthy {
			continue
		}
		// occasionally skip a server so the dashboard sees uneven routing
		if rand.IntN(5) == 0 {
			continue
		}
		t.servers[i].Requests += int64(1 + rand.IntN(5))
		return
	}
}

func (t *traffic) document() MetricsDocument {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	doc := MetricsDocument{
		UptimeSeconds: time.Since(t.started).Seconds(),
		Servers:       make([]ServerStat, len(t.servers)),
	}
	copy(doc.Servers, t.servers)
	for _, s := range t.servers {
		doc.TotalRequests += s.Requests
	}
	return doc
}

func main() {
	port := flag.Int("port", 8000, "port to listen on")
	count := flag.Int("servers", 3, "number of simulated backends")
	down := flag.Int("down", 0, "1-based index of a backend reported unhealthy (0 = none)")
	interval := flag.Duration("interval", time.Second, "how often traffic is routed")
	flag.Parse()

	if *count < 1 {
		log.Fatalf("need at least one server, got %d", *count)
	}

	t := newTraffic(*count, *down)

	go func() {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for range ticker.C {
			t.route()
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		log.Printf("request: method=%s path=%s from=%s", r.Method, r.URL.Path, r.RemoteAddr)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(t.document()); err != nil {
			log.Printf("encode failed: %v", err)
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("serving mock metrics for %d servers on %s", *count, addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
