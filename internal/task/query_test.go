package task

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskcal/internal/model"
)

func mkTask(name string, status model.Status, priority model.Priority, start, end string) model.Task {
	return model.Task{
		ID:        model.TaskID("id-" + name),
		Category1: "업무",
		TaskName:  name,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		Priority:  priority,
	}
}

func TestRunStatusAndPriorityFilters(t *testing.T) {
	tasks := []model.Task{
		mkTask("a", model.StatusPending, model.PriorityHigh, "", "2024-06-01"),
		mkTask("b", model.StatusDone, model.PriorityHigh, "", "2024-06-02"),
		mkTask("c", model.StatusPending, model.PriorityLow, "", "2024-06-03"),
	}

	res := Run(tasks, Query{Status: string(model.StatusPending)})
	assert.Equal(t, 2, res.Total)

	res = Run(tasks, Query{Status: string(model.StatusPending), Priority: string(model.PriorityHigh)})
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "a", res.Tasks[0].TaskName)

	// "전체" and "all" both mean no filtering
	assert.Equal(t, 3, Run(tasks, Query{Status: FilterAll}).Total)
	assert.Equal(t, 3, Run(tasks, Query{Status: "all"}).Total)
}

func TestRunTextSearchMatchesNameOrDescription(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", TaskName: "주간 보고서 작성", Description: ""},
		{ID: "2", TaskName: "meeting prep", Description: "주간 자료 정리"},
		{ID: "3", TaskName: "deploy", Description: "release v2"},
	}

	res := Run(tasks, Query{Mode: SearchText, Text: "주간"})
	assert.Equal(t, 2, res.Total)

	// case-insensitive
	res = Run(tasks, Query{Mode: SearchText, Text: "MEETING"})
	assert.Equal(t, 1, res.Total)

	// empty term filters nothing
	res = Run(tasks, Query{Mode: SearchText, Text: "  "})
	assert.Equal(t, 3, res.Total)
}

func TestRunCategorySearchAppliesOnlyProvidedLevels(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", TaskName: "t1", Category1: "A", Category2: "B", Category3: "C"},
		{ID: "2", TaskName: "t2", Category1: "A", Category2: "B", Category3: ""},
		{ID: "3", TaskName: "t3", Category1: "A", Category2: "X", Category3: ""},
	}

	res := Run(tasks, Query{Mode: SearchCategory, Category1: "A"})
	assert.Equal(t, 3, res.Total)

	res = Run(tasks, Query{Mode: SearchCategory, Category1: "A", Category2: "B"})
	assert.Equal(t, 2, res.Total)

	res = Run(tasks, Query{Mode: SearchCategory, Category1: "A", Category2: "B", Category3: "C"})
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "t1", res.Tasks[0].TaskName)
}

func TestRunSortEmptyDatesFirst(t *testing.T) {
	tasks := []model.Task{
		mkTask("late", model.StatusPending, model.PriorityMiddle, "", "2024-06-10"),
		mkTask("none", model.StatusPending, model.PriorityMiddle, "", ""),
		mkTask("early", model.StatusPending, model.PriorityMiddle, "", "2024-06-01"),
	}

	res := Run(tasks, Query{SortField: SortEndDate, SortDirection: SortAsc, PageSize: 10})
	names := []string{res.Tasks[0].TaskName, res.Tasks[1].TaskName, res.Tasks[2].TaskName}
	assert.Equal(t, []string{"none", "early", "late"}, names)

	res = Run(tasks, Query{SortField: SortEndDate, SortDirection: SortDesc, PageSize: 10})
	assert.Equal(t, "late", res.Tasks[0].TaskName)
	assert.Equal(t, "none", res.Tasks[2].TaskName)
}

func TestRunSortTaskNameCaseInsensitive(t *testing.T) {
	tasks := []model.Task{
		mkTask("banana", model.StatusPending, model.PriorityMiddle, "", ""),
		mkTask("Apple", model.StatusPending, model.PriorityMiddle, "", ""),
	}
	res := Run(tasks, Query{SortField: SortTaskName, SortDirection: SortAsc, PageSize: 10})
	assert.Equal(t, "Apple", res.Tasks[0].TaskName)
}

func TestRunPagination(t *testing.T) {
	tasks := make([]model.Task, 0, 12)
	for i := 0; i < 12; i++ {
		tasks = append(tasks, mkTask(fmt.Sprintf("t%02d", i), model.StatusPending, model.PriorityMiddle, "", ""))
	}

	res := Run(tasks, Query{Page: 1, PageSize: 5})
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Len(t, res.Tasks, 5)

	res = Run(tasks, Query{Page: 3, PageSize: 5})
	assert.Len(t, res.Tasks, 2)

	// past the end yields an empty slice, caller clamps using TotalPages
	res = Run(tasks, Query{Page: 4, PageSize: 5})
	assert.Empty(t, res.Tasks)
	assert.Equal(t, 3, res.TotalPages)
}

func TestRunEmptyResultHasZeroPages(t *testing.T) {
	res := Run(nil, Query{Page: 1, PageSize: 5})
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.TotalPages)
	assert.Empty(t, res.Tasks)

	tasks := []model.Task{mkTask("a", model.StatusPending, model.PriorityMiddle, "", "")}
	res = Run(tasks, Query{Status: string(model.StatusDone), Page: 1, PageSize: 5})
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.TotalPages)
}

func TestRunIsDeterministic(t *testing.T) {
	tasks := []model.Task{
		mkTask("a", model.StatusPending, model.PriorityHigh, "2024-01-01", "2024-06-01"),
		mkTask("b", model.StatusInProgress, model.PriorityLow, "", "2024-06-01"),
		mkTask("c", model.StatusPending, model.PriorityMiddle, "2024-02-01", ""),
	}
	q := Query{SortField: SortEndDate, SortDirection: SortAsc, PageSize: 10}

	first := Run(tasks, q)
	second := Run(tasks, q)
	assert.Equal(t, first, second)

	// ties keep source order: b shares a's end date and was after it
	assert.Equal(t, "c", first.Tasks[0].TaskName)
	assert.Equal(t, "a", first.Tasks[1].TaskName)
	assert.Equal(t, "b", first.Tasks[2].TaskName)
}

func TestRunDoesNotMutateInput(t *testing.T) {
	tasks := []model.Task{
		mkTask("z", model.StatusPending, model.PriorityMiddle, "", "2024-06-09"),
		mkTask("a", model.StatusPending, model.PriorityMiddle, "", "2024-06-01"),
	}
	_ = Run(tasks, Query{SortField: SortEndDate, SortDirection: SortAsc})
	assert.Equal(t, "z", tasks[0].TaskName)
	assert.Equal(t, "a", tasks[1].TaskName)
}
