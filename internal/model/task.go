package model

import (
	"time"
)

type TaskID string

// Status is the task lifecycle stage. Values are the Korean labels the
// front end renders and the data files already contain.
type Status string

const (
	StatusPending    Status = "대기"
	StatusInProgress Status = "진행중"
	StatusDone       Status = "완료"
	StatusOnHold     Status = "보류"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusOnHold:
		return true
	}
	return false
}

type Priority string

const (
	PriorityVeryHigh Priority = "very-high"
	PriorityHigh     Priority = "high"
	PriorityMiddle   Priority = "middle"
	PriorityLow      Priority = "low"
	PriorityVeryLow  Priority = "very-low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityVeryHigh, PriorityHigh, PriorityMiddle, PriorityLow, PriorityVeryLow:
		return true
	}
	return false
}

// Task is a single tracked work item. StartDate/EndDate are calendar days
// in "2006-01-02" form, empty string when unset. Category2/3 may be empty;
// Category1 names the top of the classification path.
type Task struct {
	ID            TaskID    `json:"id"`
	Category1     string    `json:"category1"`
	Category2     string    `json:"category2"`
	Category3     string    `json:"category3"`
	TaskName      string    `json:"taskName"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	Status        Status    `json:"status"`
	Priority      Priority  `json:"priority"`
	Description   string    `json:"description"`
	ImportantMemo string    `json:"importantMemo,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
