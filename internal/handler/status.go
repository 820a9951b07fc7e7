package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/angeloszaimis/lb-dashboard/internal/poller"
)

// ActiveReader exposes the last published active index.
type ActiveReader interface {
	Load() int
}

// StatusHandler is a poller.Sink that serves what it was last shown.
type StatusHandler struct {
	logger *slog.Logger
	active ActiveReader
	frame  atomic.Pointer[poller.Frame]
}

func NewStatusHandler(logger *slog.Logger, active ActiveReader) *StatusHandler {
	return &StatusHandler{
		logger: logger,
		active: active,
	}
}

// Present stores the frame for later requests.
func (h *StatusHandler) Present(f poller.Frame) {
	h.frame.Store(&f)
}

// Board serves the latest frame as JSON, or 503 until the first tick ran.
func (h *StatusHandler) Board(w http.ResponseWriter, r *http.Request) {
	f := h.frame.Load()
	if f == nil {
		http.Error(w, "No frame rendered yet", http.StatusServiceUnavailable)
		return
	}

	h.writeJSON(w, r, f)
}

type activeResponse struct {
	Index int `json:"index"`
}

// Active serves the index last published on the side channel.
func (h *StatusHandler) Active(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, activeResponse{Index: h.active.Load()})
}

type healthResponse struct {
	Status    string `json:"status"`
	Stale     bool   `json:"stale"`
	LastError string `json:"last_error,omitempty"`
}

// Health always answers 200 while the process is up; stale reports whether
// the latest tick failed.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if f := h.frame.Load(); f != nil {
		resp.Stale = f.Stale()
		resp.LastError = f.LastError
	}

	h.writeJSON(w, r, resp)
}

func (h *StatusHandler) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to encode response",
			slog.String("path", r.URL.Path),
			slog.Any("err", err))
	}
}
