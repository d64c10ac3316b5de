package task

import (
	"strings"

	"taskcal/internal/model"
)

// GanttRow is the display contract consumed by the chart widget. The
// widget only understands three progress buckets, so pending and on-hold
// both project to 0%.
type GanttRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Progress    int    `json:"progress"`
	CustomClass string `json:"custom_class"`
}

// ProjectGantt maps tasks to chart rows. A task with neither date cannot
// be drawn and is dropped; a task with only one date renders as a
// zero-length bar on that date.
func ProjectGantt(tasks []model.Task) []GanttRow {
	rows := []GanttRow{}
	for _, t := range tasks {
		if t.StartDate == "" && t.EndDate == "" {
			continue
		}

		progress := 0
		class := "gantt-task-pending"
		switch t.Status {
		case model.StatusDone:
			progress = 100
			class = "gantt-task-completed"
		case model.StatusInProgress:
			progress = 50
			class = "gantt-task-in-progress"
		case model.StatusOnHold:
			class = "gantt-task-on-hold"
		}

		start, end := t.StartDate, t.EndDate
		if start == "" {
			start = end
		}
		if end == "" {
			end = start
		}

		rows = append(rows, GanttRow{
			ID:          string(t.ID),
			Name:        ganttLabel(t),
			Start:       start,
			End:         end,
			Progress:    progress,
			CustomClass: class,
		})
	}
	return rows
}

// ganttLabel joins the non-empty category path segments and the task name.
func ganttLabel(t model.Task) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{t.Category1, t.Category2, t.Category3, t.TaskName} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " > ")
}
