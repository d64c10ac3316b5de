// Package appstate holds the in-memory render snapshot of the task and
// category collections. The snapshot is discarded and rebuilt wholesale
// after every mutation; nothing patches it in place, and the stores stay
// the only source of truth.
package appstate

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"taskcal/internal/category"
	"taskcal/internal/holiday"
	"taskcal/internal/model"
	"taskcal/internal/task"
	"taskcal/internal/timeutil"
)

type State struct {
	taskRepo     task.Repo
	categoryRepo category.Repo
	holidays     holiday.Map
	lookahead    int
	now          func() time.Time
	log          zerolog.Logger

	mu            sync.RWMutex
	tasks         []model.Task
	categories    []model.Category
	notifications []model.Task
}

type Options struct {
	TaskRepo      task.Repo
	CategoryRepo  category.Repo
	Holidays      holiday.Map
	LookaheadDays int
	Now           func() time.Time
	Log           zerolog.Logger
}

func New(opts Options) *State {
	if opts.LookaheadDays <= 0 {
		opts.LookaheadDays = task.DefaultLookaheadDays
	}
	if opts.Now == nil {
		opts.Now = timeutil.Now
	}
	if opts.Holidays == nil {
		opts.Holidays = holiday.Map{}
	}
	return &State{
		taskRepo:     opts.TaskRepo,
		categoryRepo: opts.CategoryRepo,
		holidays:     opts.Holidays,
		lookahead:    opts.LookaheadDays,
		now:          opts.Now,
		log:          opts.Log,
	}
}

// Reload re-reads both collections from the stores and then recomputes
// the ending-soon notification set as an explicit follow-up step. The
// reload either fully succeeds or leaves the previous snapshot untouched.
func (s *State) Reload() error {
	tasks, err := s.taskRepo.List()
	if err != nil {
		return err
	}
	categories, err := s.categoryRepo.List()
	if err != nil {
		return err
	}
	notifications := task.EndingSoon(tasks, s.now(), s.lookahead)

	s.mu.Lock()
	s.tasks = tasks
	s.categories = categories
	s.notifications = notifications
	s.mu.Unlock()

	s.log.Debug().
		Int("tasks", len(tasks)).
		Int("categories", len(categories)).
		Int("ending_soon", len(notifications)).
		Msg("snapshot reloaded")
	return nil
}

// Tasks returns a copy of the current task snapshot.
func (s *State) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Categories returns a copy of the current category snapshot.
func (s *State) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Notifications returns the ending-soon set computed at the last reload.
func (s *State) Notifications() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *State) Holidays() holiday.Map {
	return s.holidays
}
