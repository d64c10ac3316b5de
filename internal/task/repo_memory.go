package task

import (
	"sync"

	"github.com/google/uuid"

	"taskcal/internal/model"
	"taskcal/internal/timeutil"
)

// MemoryRepo keeps the collection in a slice so tests and tools get the
// same insertion ordering the file store has.
type MemoryRepo struct {
	mu    sync.RWMutex
	tasks []model.Task
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tasks: []model.Task{}}
}

func (r *MemoryRepo) Create(t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ApplyCreateDefaults(&t)
	t.ID = model.TaskID(uuid.NewString())
	t.CreatedAt = timeutil.Now()
	r.tasks = append(r.tasks, t)
	return t, nil
}

func (r *MemoryRepo) Get(id model.TaskID) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, ErrNotFound
}

func (r *MemoryRepo) Update(id model.TaskID, p Patch) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID != id {
			continue
		}
		merged := r.tasks[i]
		applyPatch(&merged, p)
		merged.ID = id
		merged.CreatedAt = r.tasks[i].CreatedAt
		r.tasks[i] = merged
		return merged, nil
	}
	return model.Task{}, ErrNotFound
}

func (r *MemoryRepo) Delete(id model.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) List() ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}
