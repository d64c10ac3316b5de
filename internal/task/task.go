package task

import (
	"strings"
	"time"

	"taskcal/internal/model"
	"taskcal/internal/timeutil"
)

const copySuffix = " (복사본)"

// ApplyCreateDefaults fills the fields the edit form leaves blank.
func ApplyCreateDefaults(t *model.Task) {
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMiddle
	}
}

// Validate checks a record at the edit boundary, before it reaches the
// store. Stored records are never re-checked.
func Validate(t model.Task) error {
	if strings.TrimSpace(t.TaskName) == "" {
		return model.Invalid("taskName", "required")
	}
	if t.Status != "" && !t.Status.Valid() {
		return model.Invalid("status", "unknown status "+string(t.Status))
	}
	if t.Priority != "" && !t.Priority.Valid() {
		return model.Invalid("priority", "unknown priority "+string(t.Priority))
	}

	start, err := parseOptionalDate(t.StartDate)
	if err != nil {
		return model.Invalid("startDate", "must be YYYY-MM-DD")
	}
	end, err := parseOptionalDate(t.EndDate)
	if err != nil {
		return model.Invalid("endDate", "must be YYYY-MM-DD")
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return model.Invalid("endDate", "must not be before startDate")
	}
	return nil
}

// CopyOf is the duplicate-task transform: a fresh unsaved record with a
// copy marker on the name. ID and CreatedAt are cleared so Create assigns
// new ones.
func CopyOf(t model.Task) model.Task {
	c := t
	c.ID = ""
	c.CreatedAt = time.Time{}
	c.TaskName = t.TaskName + copySuffix
	return c
}

// parseOptionalDate treats the empty string as "unset" (zero time).
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return timeutil.ParseDate(s)
}
