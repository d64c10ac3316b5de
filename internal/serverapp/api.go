package serverapp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"taskcal/internal/appstate"
	"taskcal/internal/task"
	"taskcal/internal/timeutil"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// registerStateRoutes exposes the derived views computed from the current
// snapshot: ending-soon notifications, per-day calendar cells, the Gantt
// projection, and the raw holiday table.
func registerStateRoutes(api *mux.Router, state *appstate.State) {
	// Ending-soon set, recomputed at every reload, never by timer.
	api.HandleFunc("/notifications", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, state.Notifications())
	}).Methods(http.MethodGet)

	// One calendar cell: decoration flags plus the tasks whose end date
	// lands on that day.
	api.HandleFunc("/calendar/{date}", func(w http.ResponseWriter, r *http.Request) {
		day, err := timeutil.ParseDate(mux.Vars(r)["date"])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "date must be YYYY-MM-DD"})
			return
		}

		var selected time.Time
		if s := r.URL.Query().Get("selected"); s != "" {
			if sel, err := timeutil.ParseDate(s); err == nil {
				selected = sel
			}
		}

		tasks := state.Tasks()
		deco := task.DecorateDay(day, timeutil.Now(), selected, state.Holidays())
		writeJSON(w, http.StatusOK, map[string]any{
			"date":        deco.Date,
			"today":       deco.Today,
			"selected":    deco.Selected,
			"weekend":     deco.Weekend,
			"holiday":     deco.Holiday,
			"holidayName": deco.HolidayName,
			"tasks":       task.ForDay(tasks, day),
		})
	}).Methods(http.MethodGet)

	// Display rows for the chart widget; tasks without any date are not
	// projectable and are absent from the result.
	api.HandleFunc("/gantt", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, task.ProjectGantt(state.Tasks()))
	}).Methods(http.MethodGet)

	api.HandleFunc("/holidays", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, state.Holidays())
	}).Methods(http.MethodGet)
}
