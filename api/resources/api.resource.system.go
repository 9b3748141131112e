package resources

import (
	"net/http"
	"time"

	"github.com/envmon/console/api/middleware"
	"github.com/envmon/console/internal/errors"
	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

// SystemHandlers serves health, metrics and the API document.
type SystemHandlers struct {
	*base
}

// HealthResponse reports the console version and whether the backend answers.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Backend string `json:"backend"`
}

// @Summary Health check
// @Description Report console version and backend reachability
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *SystemHandlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Version: nuts.GetVersion(), Backend: "ok"}
	code := http.StatusOK
	if err := h.service.Health(r.Context()); err != nil {
		nuts.L.Warnf("[API] Backend health probe failed: %v", err)
		resp.Status = "degraded"
		resp.Backend = err.Error()
		code = http.StatusServiceUnavailable
	}
	respondWithJSON(w, code, resp)
}

// @Summary Console metrics
// @Description Upload and delete outcome counters
// @Tags system
// @Produce json
// @Param event query string false "Event name, e.g. upload.failed"
// @Param window query string false "Window, e.g. 1h"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} errors.ConsoleError
// @Router /metrics [get]
func (h *SystemHandlers) Metrics(w http.ResponseWriter, r *http.Request) {
	event := r.URL.Query().Get("event")
	if event == "" {
		respondWithJSON(w, http.StatusOK, h.service.Monitoring().Snapshot())
		return
	}

	window := time.Hour
	if raw := r.URL.Query().Get("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			respondWithError(w, errors.NewValidationError("invalid window", err).
				WithRequestID(middleware.RequestID(r.Context())))
			return
		}
		window = d
	}
	counts, err := h.service.Monitoring().GetEventMetrics(event, window)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to read metrics", err).
			WithRequestID(middleware.RequestID(r.Context())))
		return
	}
	respondWithJSON(w, http.StatusOK, counts)
}

// Swagger serves the registered API document.
func (h *SystemHandlers) Swagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("API document not registered", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
