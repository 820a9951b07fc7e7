package main

import (
	"net/http"

	"github.com/angeloszaimis/lb-dashboard/internal/handler"
	"github.com/angeloszaimis/lb-dashboard/internal/metrics"
)

func setupRouter(status *handler.StatusHandler, metricsCollector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /board", status.Board)
	mux.HandleFunc("GET /active", status.Active)
	mux.HandleFunc("GET /healthz", status.Health)
	mux.HandleFunc("GET /stats", metricsCollector.Handler())
	mux.Handle("GET /metrics", metricsCollector.PrometheusHandler())

	return mux
}
