package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"taskcal/internal/model"
)

type Handler struct {
	repo     Repo
	onChange func(action string)
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

// SetOnChange registers the hook run after every successful mutation.
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
		writeErr(w, http.StatusNotFound, "Category not found")
	case errors.As(err, &ve):
		writeErr(w, http.StatusBadRequest, ve.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// GET /api/categories
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// POST /api/categories
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c model.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := Validate(c); err != nil {
		writeStoreErr(w, err)
		return
	}
	created, err := h.repo.Create(c)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	h.changed("created")
	writeJSON(w, http.StatusCreated, created)
}

// PUT /api/categories/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.CategoryID(mux.Vars(r)["id"])

	var p Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

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

// DELETE /api/categories/{id}
// Deleting a node does not touch tasks still naming it; dangling
// references are tolerated.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.CategoryID(mux.Vars(r)["id"])
	if err := h.repo.Delete(id); err != nil {
		writeStoreErr(w, err)
		return
	}
	h.changed("deleted")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// POST /api/categories/{id}/copy
func (h *Handler) Copy(w http.ResponseWriter, r *http.Request) {
	id := model.CategoryID(mux.Vars(r)["id"])
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

// GET /api/categories/tree
func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, BuildTree(categories))
}

// GET /api/categories/subcategories?main=
func (h *Handler) Subs(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SubCategories(categories, r.URL.Query().Get("main")))
}

// GET /api/categories/details?main=&sub=
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, DetailCategories(categories, q.Get("main"), q.Get("sub")))
}
