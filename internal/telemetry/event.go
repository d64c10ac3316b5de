// Package telemetry keeps an in-memory log of store mutations so the
// activity and stats endpoints can answer "what changed recently"
// without touching the data files.
package telemetry

import (
	"sync"
	"time"
)

type EventType string

const (
	EventTaskCreated     EventType = "task_created"
	EventTaskUpdated     EventType = "task_updated"
	EventTaskDeleted     EventType = "task_deleted"
	EventTaskCopied      EventType = "task_copied"
	EventCategoryCreated EventType = "category_created"
	EventCategoryUpdated EventType = "category_updated"
	EventCategoryDeleted EventType = "category_deleted"
	EventCategoryCopied  EventType = "category_copied"
	EventDataRestored    EventType = "data_restored"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is an append-only in-memory event log. Entries past the cap are
// dropped oldest-first; the log is a convenience view, not a store.
type Log struct {
	mu     sync.RWMutex
	events []Event
	nextID int
	cap    int
	now    func() time.Time
}

const defaultCap = 1000

func NewLog() *Log {
	return &Log{nextID: 1, cap: defaultCap, now: time.Now}
}

func (l *Log) Record(t EventType) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, Event{
		ID:        l.nextID,
		Type:      t,
		Timestamp: l.now(),
	})
	l.nextID++
	if len(l.events) > l.cap {
		l.events = l.events[len(l.events)-l.cap:]
	}
}

// Events returns entries at or after since, oldest first. A zero since
// returns everything still retained.
func (l *Log) Events(since time.Time) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, 0, len(l.events))
	for _, e := range l.events {
		if e.Timestamp.Before(since) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
	l.nextID = 1
}
