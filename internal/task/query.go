package task

import (
	"sort"
	"strings"
	"time"

	"taskcal/internal/model"
	"taskcal/internal/timeutil"
)

const DefaultPageSize = 5

type SearchMode string

const (
	SearchText     SearchMode = "text"
	SearchCategory SearchMode = "category"
)

type SortField string

const (
	SortEndDate   SortField = "endDate"
	SortStartDate SortField = "startDate"
	SortTaskName  SortField = "taskName"
	SortStatus    SortField = "status"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterAll matches every value for the status and priority filters.
const FilterAll = "전체"

// Query describes one run of the view pipeline. Zero values mean "no
// filtering" at each stage; Page counts from 1.
type Query struct {
	Status   string
	Priority string

	Mode      SearchMode
	Text      string
	Category1 string
	Category2 string
	Category3 string

	SortField     SortField
	SortDirection SortDirection

	Page     int
	PageSize int
}

type Result struct {
	Tasks      []model.Task
	Total      int
	Page       int
	TotalPages int
}

// Run applies the fixed pipeline (status → priority → search → sort →
// paginate) to a snapshot. It never mutates its input and is a pure
// function of (tasks, q): identical inputs give identical output.
func Run(tasks []model.Task, q Query) Result {
	working := filterStatus(tasks, q.Status)
	working = filterPriority(working, q.Priority)
	working = search(working, q)
	sortTasks(working, q.SortField, q.SortDirection)
	return paginate(working, q.Page, q.PageSize)
}

func filterStatus(tasks []model.Task, status string) []model.Task {
	if status == "" || status == "all" || status == FilterAll {
		out := make([]model.Task, len(tasks))
		copy(out, tasks)
		return out
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if string(t.Status) == status {
			out = append(out, t)
		}
	}
	return out
}

func filterPriority(tasks []model.Task, priority string) []model.Task {
	if priority == "" || priority == "all" || priority == FilterAll {
		return tasks
	}
	out := tasks[:0]
	for _, t := range tasks {
		if string(t.Priority) == priority {
			out = append(out, t)
		}
	}
	return out
}

func search(tasks []model.Task, q Query) []model.Task {
	switch q.Mode {
	case SearchCategory:
		out := tasks[:0]
		for _, t := range tasks {
			if q.Category1 != "" && t.Category1 != q.Category1 {
				continue
			}
			if q.Category2 != "" && t.Category2 != q.Category2 {
				continue
			}
			if q.Category3 != "" && t.Category3 != q.Category3 {
				continue
			}
			out = append(out, t)
		}
		return out
	default:
		term := strings.ToLower(strings.TrimSpace(q.Text))
		if term == "" {
			return tasks
		}
		out := tasks[:0]
		for _, t := range tasks {
			if strings.Contains(strings.ToLower(t.TaskName), term) ||
				strings.Contains(strings.ToLower(t.Description), term) {
				out = append(out, t)
			}
		}
		return out
	}
}

// dateOrEpoch sorts missing/unparseable dates as the earliest possible
// value, matching how the legacy views ordered empty dates first.
func dateOrEpoch(s string) time.Time {
	if s == "" {
		return time.Unix(0, 0)
	}
	d, err := timeutil.ParseDate(s)
	if err != nil {
		return time.Unix(0, 0)
	}
	return d
}

func sortTasks(tasks []model.Task, field SortField, dir SortDirection) {
	var less func(a, b model.Task) bool

	switch field {
	case SortStartDate:
		less = func(a, b model.Task) bool {
			return dateOrEpoch(a.StartDate).Before(dateOrEpoch(b.StartDate))
		}
	case SortTaskName:
		less = func(a, b model.Task) bool {
			return strings.ToLower(a.TaskName) < strings.ToLower(b.TaskName)
		}
	case SortStatus:
		less = func(a, b model.Task) bool {
			return string(a.Status) < string(b.Status)
		}
	default: // SortEndDate
		less = func(a, b model.Task) bool {
			return dateOrEpoch(a.EndDate).Before(dateOrEpoch(b.EndDate))
		}
	}

	// SliceStable keeps source order on ties, which is what makes the
	// pipeline deterministic for repeated runs.
	sort.SliceStable(tasks, func(i, j int) bool {
		if dir == SortDesc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

func paginate(tasks []model.Task, page, size int) Result {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(tasks)
	// Plain ceiling: an empty result set reports zero pages.
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	if start >= total {
		return Result{Tasks: []model.Task{}, Total: total, Page: page, TotalPages: totalPages}
	}
	end := start + size
	if end > total {
		end = total
	}
	return Result{Tasks: tasks[start:end], Total: total, Page: page, TotalPages: totalPages}
}
