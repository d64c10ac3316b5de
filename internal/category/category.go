package category

import (
	"strings"

	"taskcal/internal/model"
)

const copySuffix = " (복사본)"

// Validate checks a record at the edit boundary.
func Validate(c model.Category) error {
	if strings.TrimSpace(c.MainCategory) == "" {
		return model.Invalid("mainCategory", "required")
	}
	return nil
}

// CopyOf duplicates a record, marking the most specific non-empty level
// with the copy suffix so the new row does not collide with the original
// tree path.
func CopyOf(c model.Category) model.Category {
	dup := c
	dup.ID = ""
	switch {
	case dup.DetailCategory != "":
		dup.DetailCategory += copySuffix
	case dup.SubCategory != "":
		dup.SubCategory += copySuffix
	default:
		dup.MainCategory += copySuffix
	}
	return dup
}
