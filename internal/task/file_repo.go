package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"taskcal/internal/model"
	"taskcal/internal/timeutil"
)

// fileEnvelope is the on-disk shape: {"tasks":[...]}. Every mutation
// rewrites the whole document; there is no partial patching on disk.
type fileEnvelope struct {
	Tasks []model.Task `json:"tasks"`
}

// FileRepo is the flat-file task store. A single mutex serializes access
// within this process; a second process sharing the data dir still races
// last-write-wins.
type FileRepo struct {
	mu   sync.RWMutex
	path string
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, "tasks.json")}
	if _, err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() ([]model.Task, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read task store: %w", err)
	}
	var env fileEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode task store: %w", err)
	}
	if env.Tasks == nil {
		env.Tasks = []model.Task{}
	}
	return env.Tasks, nil
}

func (r *FileRepo) save(tasks []model.Task) error {
	b, err := json.MarshalIndent(fileEnvelope{Tasks: tasks}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.path, b, 0o644); err != nil {
		return fmt.Errorf("write task store: %w", err)
	}
	return nil
}

func (r *FileRepo) Create(t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return model.Task{}, err
	}

	ApplyCreateDefaults(&t)
	t.ID = model.TaskID(uuid.NewString())
	t.CreatedAt = timeutil.Now()

	tasks = append(tasks, t)
	if err := r.save(tasks); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *FileRepo) Get(id model.TaskID) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks, err := r.load()
	if err != nil {
		return model.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, ErrNotFound
}

func (r *FileRepo) Update(id model.TaskID, p Patch) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return model.Task{}, err
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		merged := tasks[i]
		applyPatch(&merged, p)
		merged.ID = id // identity is immutable regardless of payload
		merged.CreatedAt = tasks[i].CreatedAt
		tasks[i] = merged
		if err := r.save(tasks); err != nil {
			return model.Task{}, err
		}
		return merged, nil
	}
	return model.Task{}, ErrNotFound
}

func (r *FileRepo) Delete(id model.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks = append(tasks[:i], tasks[i+1:]...)
		return r.save(tasks)
	}
	return ErrNotFound
}

// List returns the collection in file order. The slice is freshly decoded
// on every call, so callers may keep or mutate it freely.
func (r *FileRepo) List() ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load()
}
