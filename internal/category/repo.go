package category

import (
	"errors"

	"taskcal/internal/model"
)

var ErrNotFound = errors.New("category not found")

// Patch is a partial update; nil pointer means "no change", empty string
// clears the level. ID is not patchable.
type Patch struct {
	MainCategory   *string `json:"mainCategory,omitempty"`
	SubCategory    *string `json:"subCategory,omitempty"`
	DetailCategory *string `json:"detailCategory,omitempty"`
}

type Repo interface {
	Create(c model.Category) (model.Category, error)
	Get(id model.CategoryID) (model.Category, error)
	Update(id model.CategoryID, p Patch) (model.Category, error)
	Delete(id model.CategoryID) error
	List() ([]model.Category, error)
}

func applyPatch(c *model.Category, p Patch) {
	if p.MainCategory != nil {
		c.MainCategory = *p.MainCategory
	}
	if p.SubCategory != nil {
		c.SubCategory = *p.SubCategory
	}
	if p.DetailCategory != nil {
		c.DetailCategory = *p.DetailCategory
	}
}
