package telemetry

import (
	"encoding/json"
	"net/http"
	"time"

	"taskcal/internal/timeutil"
)

type Handler struct {
	log *Log
	now func() time.Time
}

func NewHandler(log *Log) *Handler {
	return &Handler{log: log, now: timeutil.Now}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /api/activity?since=YYYY-MM-DD
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	since, ok := h.sinceParam(w, r, time.Time{})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": h.log.Events(since)})
}

// GET /api/stats?since=YYYY-MM-DD (defaults to today)
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	since, ok := h.sinceParam(w, r, timeutil.StartOfDay(h.now()))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CalculateStats(h.log.Events(since), since))
}

func (h *Handler) sinceParam(w http.ResponseWriter, r *http.Request, fallback time.Time) (time.Time, bool) {
	raw := r.URL.Query().Get("since")
	if raw == "" {
		return fallback, true
	}
	since, err := timeutil.ParseDate(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid since date"})
		return time.Time{}, false
	}
	return since, true
}
