package task

import (
	"errors"

	"taskcal/internal/model"
)

var ErrNotFound = errors.New("task not found")

// Patch represents a partial update. nil pointer => "no change"; an empty
// string clears the field (dates, categories, memo). ID and CreatedAt are
// not patchable.
type Patch struct {
	Category1     *string         `json:"category1,omitempty"`
	Category2     *string         `json:"category2,omitempty"`
	Category3     *string         `json:"category3,omitempty"`
	TaskName      *string         `json:"taskName,omitempty"`
	StartDate     *string         `json:"startDate,omitempty"`
	EndDate       *string         `json:"endDate,omitempty"`
	Status        *model.Status   `json:"status,omitempty"`
	Priority      *model.Priority `json:"priority,omitempty"`
	Description   *string         `json:"description,omitempty"`
	ImportantMemo *string         `json:"importantMemo,omitempty"`
}

type Repo interface {
	Create(t model.Task) (model.Task, error)
	Get(id model.TaskID) (model.Task, error)
	Update(id model.TaskID, p Patch) (model.Task, error)
	Delete(id model.TaskID) error
	List() ([]model.Task, error)
}

func applyPatch(t *model.Task, p Patch) {
	if p.Category1 != nil {
		t.Category1 = *p.Category1
	}
	if p.Category2 != nil {
		t.Category2 = *p.Category2
	}
	if p.Category3 != nil {
		t.Category3 = *p.Category3
	}
	if p.TaskName != nil {
		t.TaskName = *p.TaskName
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ImportantMemo != nil {
		t.ImportantMemo = *p.ImportantMemo
	}
}
