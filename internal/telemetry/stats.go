package telemetry

import (
	"strings"
	"time"
)

type Stats struct {
	Since             string            `json:"since"`
	EventCounts       map[EventType]int `json:"event_counts"`
	TaskMutations     int               `json:"task_mutations"`
	CategoryMutations int               `json:"category_mutations"`
	Restores          int               `json:"restores"`
}

// CalculateStats aggregates the given events into per-type counts and
// entity totals.
func CalculateStats(events []Event, since time.Time) Stats {
	stats := Stats{
		Since:       since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
	}
	for _, e := range events {
		stats.EventCounts[e.Type]++
		switch {
		case strings.HasPrefix(string(e.Type), "task_"):
			stats.TaskMutations++
		case strings.HasPrefix(string(e.Type), "category_"):
			stats.CategoryMutations++
		case e.Type == EventDataRestored:
			stats.Restores++
		}
	}
	return stats
}
