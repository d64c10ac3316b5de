package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"taskcal/internal/model"
)

type Handler struct {
	repo     Repo
	pageSize int
	onChange func(action string)
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo, pageSize: DefaultPageSize}
}

// SetPageSize overrides the page size used when a search request does
// not ask for one.
func (h *Handler) SetPageSize(n int) {
	if n > 0 {
		h.pageSize = n
	}
}

// SetOnChange registers the hook run after every successful mutation
// (snapshot reload + change broadcast). Explicit sequential composition,
// not a wrapped store.
func (h *Handler) SetOnChange(fn func(action string)) {
	h.onChange = fn
}

func (h *Handler) changed(action string) {
	if h.onChange != nil {
		h.onChange(action)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeStoreErr(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		writeErr(w, http.StatusNotFound, "Task not found")
	case errors.As(err, &ve):
		writeErr(w, http.StatusBadRequest, ve.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// GET /api/tasks
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repo.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// POST /api/tasks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var t model.Task
	if err := decodeJSON(r, &t); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ApplyCreateDefaults(&t)
	if err := Validate(t); err != nil {
		writeStoreErr(w, err)
		return
	}
	created, err := h.repo.Create(t)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	h.changed("created")
	writeJSON(w, http.StatusCreated, created)
}

// PUT /api/tasks/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(mux.Vars(r)["id"])

	var p Patch
	if err := decodeJSON(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Merge against the current record first so the edit-boundary rules
	// see the full picture, then persist.
	current, err := h.repo.Get(id)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	preview := current
	applyPatch(&preview, p)
	if err := Validate(preview); err != nil {
		writeStoreErr(w, err)
		return
	}

	updated, err := h.repo.Update(id, p)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	h.changed("updated")
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/tasks/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(mux.Vars(r)["id"])
	if err := h.repo.Delete(id); err != nil {
		writeStoreErr(w, err)
		return
	}
	h.changed("deleted")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// POST /api/tasks/{id}/copy
func (h *Handler) Copy(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(mux.Vars(r)["id"])
	src, err := h.repo.Get(id)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	created, err := h.repo.Create(CopyOf(src))
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	h.changed("copied")
	writeJSON(w, http.StatusCreated, created)
}

// GET /api/tasks/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repo.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	q := queryFromRequest(r)
	if q.PageSize <= 0 {
		q.PageSize = h.pageSize
	}
	res := Run(tasks, q)
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":      res.Tasks,
		"total":      res.Total,
		"page":       res.Page,
		"totalPages": res.TotalPages,
	})
}

func queryFromRequest(r *http.Request) Query {
	v := r.URL.Query()

	q := Query{
		Status:        v.Get("status"),
		Priority:      v.Get("priority"),
		Mode:          SearchMode(v.Get("mode")),
		Text:          v.Get("q"),
		Category1:     v.Get("category1"),
		Category2:     v.Get("category2"),
		Category3:     v.Get("category3"),
		SortField:     SortField(v.Get("sort")),
		SortDirection: SortDirection(v.Get("dir")),
	}
	if q.Mode == "" {
		q.Mode = SearchText
	}
	if q.SortField == "" {
		q.SortField = SortEndDate
	}
	if q.SortDirection == "" {
		q.SortDirection = SortAsc
	}
	q.Page, _ = strconv.Atoi(v.Get("page"))
	q.PageSize, _ = strconv.Atoi(v.Get("pageSize"))
	return q
}
