package category

import (
	"sync"

	"github.com/google/uuid"

	"taskcal/internal/model"
)

type MemoryRepo struct {
	mu         sync.RWMutex
	categories []model.Category
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{categories: []model.Category{}}
}

func (r *MemoryRepo) Create(c model.Category) (model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = model.CategoryID(uuid.NewString())
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *MemoryRepo) Get(id model.CategoryID) (model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Category{}, ErrNotFound
}

func (r *MemoryRepo) Update(id model.CategoryID, p Patch) (model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.categories {
		if r.categories[i].ID != id {
			continue
		}
		merged := r.categories[i]
		applyPatch(&merged, p)
		merged.ID = id
		r.categories[i] = merged
		return merged, nil
	}
	return model.Category{}, ErrNotFound
}

func (r *MemoryRepo) Delete(id model.CategoryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) List() ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}
