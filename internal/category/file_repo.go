package category

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"taskcal/internal/model"
)

// fileEnvelope is the on-disk shape: {"categories":[...]}.
type fileEnvelope struct {
	Categories []model.Category `json:"categories"`
}

// FileRepo is the flat-file category store. Same whole-file overwrite
// contract as the task store; deleting a higher-level node does not
// cascade to rows naming it as a prefix.
type FileRepo struct {
	mu   sync.RWMutex
	path string
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, "categories.json")}
	if _, err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() ([]model.Category, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Category{}, nil
		}
		return nil, fmt.Errorf("read category store: %w", err)
	}
	var env fileEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode category store: %w", err)
	}
	if env.Categories == nil {
		env.Categories = []model.Category{}
	}
	return env.Categories, nil
}

func (r *FileRepo) save(categories []model.Category) error {
	b, err := json.MarshalIndent(fileEnvelope{Categories: categories}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.path, b, 0o644); err != nil {
		return fmt.Errorf("write category store: %w", err)
	}
	return nil
}

func (r *FileRepo) Create(c model.Category) (model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return model.Category{}, err
	}
	c.ID = model.CategoryID(uuid.NewString())
	categories = append(categories, c)
	if err := r.save(categories); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *FileRepo) Get(id model.CategoryID) (model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories, err := r.load()
	if err != nil {
		return model.Category{}, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Category{}, ErrNotFound
}

func (r *FileRepo) Update(id model.CategoryID, p Patch) (model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return model.Category{}, err
	}
	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		merged := categories[i]
		applyPatch(&merged, p)
		merged.ID = id
		categories[i] = merged
		if err := r.save(categories); err != nil {
			return model.Category{}, err
		}
		return merged, nil
	}
	return model.Category{}, ErrNotFound
}

func (r *FileRepo) Delete(id model.CategoryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		categories = append(categories[:i], categories[i+1:]...)
		return r.save(categories)
	}
	return ErrNotFound
}

func (r *FileRepo) List() ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load()
}
