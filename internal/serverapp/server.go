// Package serverapp is the HTTP composition root: it builds the stores,
// the snapshot state, the websocket hub, and the full route table.
package serverapp

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"taskcal/internal/appstate"
	"taskcal/internal/category"
	"taskcal/internal/config"
	"taskcal/internal/holiday"
	"taskcal/internal/httpmw"
	"taskcal/internal/ops"
	"taskcal/internal/task"
	"taskcal/internal/telemetry"
	"taskcal/internal/ws"
)

type Options struct {
	Config *config.Config
	Log    zerolog.Logger
}

// App exposes the wired components for main and for integration tests.
type App struct {
	Handler      http.Handler
	State        *appstate.State
	TaskRepo     task.Repo
	CategoryRepo category.Repo
	Hub          *ws.Hub
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	cfg := opts.Config
	log := opts.Log

	taskRepo, err := task.NewFileRepo(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	categoryRepo, err := category.NewFileRepo(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	holidays := holiday.Load(filepath.Join(cfg.Data.Dir, "holidays.json"))

	state := appstate.New(appstate.Options{
		TaskRepo:      taskRepo,
		CategoryRepo:  categoryRepo,
		Holidays:      holidays,
		LookaheadDays: cfg.Notifications.LookaheadDays,
		Log:           log.With().Str("component", "appstate").Logger(),
	})
	if err := state.Reload(); err != nil {
		return nil, err
	}

	hub := ws.NewHub(log.With().Str("component", "ws").Logger())
	go hub.Run()

	activity := telemetry.NewLog()

	// Every successful mutation logs an activity event, reloads the
	// snapshot, and then tells the connected clients to re-fetch.
	// Sequential, no wrapped stores.
	changed := func(entity, plural string) func(action string) {
		return func(action string) {
			activity.Record(telemetry.EventType(entity + "_" + action))
			if err := state.Reload(); err != nil {
				log.Error().Err(err).Msg("snapshot reload failed")
				return
			}
			hub.Broadcast(ws.Message{Type: "sync", Entity: plural})
		}
	}

	taskHandler := task.NewHandler(taskRepo)
	taskHandler.SetPageSize(cfg.Views.PageSize)
	taskHandler.SetOnChange(changed("task", "tasks"))
	categoryHandler := category.NewHandler(categoryRepo)
	categoryHandler.SetOnChange(changed("category", "categories"))

	opsHandler := ops.NewHandler(cfg.Data.Dir)
	opsHandler.SetOnRestore(func() {
		activity.Record(telemetry.EventDataRestored)
		if err := state.Reload(); err != nil {
			log.Error().Err(err).Msg("snapshot reload failed")
			return
		}
		hub.Broadcast(ws.Message{Type: "sync", Entity: "all"})
	})
	activityHandler := telemetry.NewHandler(activity)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/tasks", taskHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/tasks", taskHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/tasks/search", taskHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", taskHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id}/copy", taskHandler.Copy).Methods(http.MethodPost)

	api.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/categories", categoryHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/categories/tree", categoryHandler.Tree).Methods(http.MethodGet)
	api.HandleFunc("/categories/subcategories", categoryHandler.Subs).Methods(http.MethodGet)
	api.HandleFunc("/categories/details", categoryHandler.Details).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", categoryHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id}", categoryHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/categories/{id}/copy", categoryHandler.Copy).Methods(http.MethodPost)

	api.HandleFunc("/backup", opsHandler.Backup).Methods(http.MethodGet)
	api.HandleFunc("/restore", opsHandler.Restore).Methods(http.MethodPost)
	api.HandleFunc("/activity", activityHandler.Activity).Methods(http.MethodGet)
	api.HandleFunc("/stats", activityHandler.Stats).Methods(http.MethodGet)

	registerStateRoutes(api, state)
	api.HandleFunc("/ws", hub.Handle)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "taskcal",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := taskRepo.List(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "task storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "taskcal"})
	}).Methods(http.MethodGet)

	// The front end is prebuilt static files; everything not matched above
	// falls through to disk.
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.Server.StaticDir)))

	corsLayer := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORS,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	handler := httpmw.Chain(
		corsLayer.Handler(r),
		httpmw.WithAccessLog(log.With().Str("component", "http").Logger()),
		httpmw.WithRequestID,
		httpmw.WithRecover(log.With().Str("component", "http").Logger()),
	)

	return &App{
		Handler:      handler,
		State:        state,
		TaskRepo:     taskRepo,
		CategoryRepo: categoryRepo,
		Hub:          hub,
	}, nil
}
