package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Status values reported by the readiness endpoint.
const (
	StatusServing    = "SERVING"
	StatusNotServing = "NOT_SERVING"
)

// checkTimeout bounds each dependency check.
const checkTimeout = 2 * time.Second

// Pinger is used to check database connectivity (e.g. *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Response is the readiness body.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler serves readiness for load balancers and CI.
type Handler struct {
	pinger   Pinger
	bindings func() int
}

// NewHandler returns a readiness handler. If pinger is nil the database check is
// skipped. bindings, if set, reports the number of live rVASP bindings.
func NewHandler(pinger Pinger, bindings func() int) *Handler {
	return &Handler{pinger: pinger, bindings: bindings}
}

// Check runs every dependency check.
func (h *Handler) Check(ctx context.Context) Response {
	resp := Response{Status: StatusServing, Checks: map[string]string{}}
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(ctx, checkTimeout)
		defer cancel()
		if err := h.pinger.PingContext(ctx); err != nil {
			resp.Status = StatusNotServing
			resp.Checks["database"] = err.Error()
		} else {
			resp.Checks["database"] = "ok"
		}
	}
	if h.bindings != nil {
		resp.Checks["bindings"] = strconv.Itoa(h.bindings())
	}
	return resp
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h.Check(r.Context())
	code := http.StatusOK
	if resp.Status != StatusServing {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
