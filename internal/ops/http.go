package ops

import (
	"encoding/json"
	"fmt"
	"net/http"

	"taskcal/internal/timeutil"
)

type Handler struct {
	dataDir   string
	onRestore func()
}

func NewHandler(dataDir string) *Handler {
	return &Handler{dataDir: dataDir}
}

// SetOnRestore registers the hook run after a successful restore
// (snapshot reload + change broadcast).
func (h *Handler) SetOnRestore(fn func()) {
	h.onRestore = fn
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /api/backup
func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	name := fmt.Sprintf("taskcal-backup-%s.tar.gz", timeutil.FormatDate(timeutil.Now()))
	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := Export(h.dataDir, w); err != nil {
		// Headers may already be out; nothing useful left to send.
		return
	}
}

// POST /api/restore
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	if err := Restore(r.Body, h.dataDir); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	if h.onRestore != nil {
		h.onRestore()
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
