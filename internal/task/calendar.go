package task

import (
	"sort"
	"time"

	"taskcal/internal/holiday"
	"taskcal/internal/model"
	"taskcal/internal/timeutil"
)

// DefaultLookaheadDays is the ending-soon notification window.
const DefaultLookaheadDays = 7

// ForDay returns the tasks associated with a calendar day. Membership is
// end-date-only: a task spanning 01-01..01-05 belongs to 01-05 and no
// other day. Tasks without an end date never appear on any day.
func ForDay(tasks []model.Task, day time.Time) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if t.EndDate == "" {
			continue
		}
		end, err := timeutil.ParseDate(t.EndDate)
		if err != nil {
			continue
		}
		if timeutil.SameDay(end, day) {
			out = append(out, t)
		}
	}
	return out
}

// EndingSoon returns the not-yet-done tasks whose end date falls within
// [today, today+windowDays], both bounds inclusive, sorted ascending by
// end date. Recomputed on every collection reload, never on a timer.
func EndingSoon(tasks []model.Task, now time.Time, windowDays int) []model.Task {
	if windowDays <= 0 {
		windowDays = DefaultLookaheadDays
	}
	from := timeutil.StartOfDay(now)
	to := from.AddDate(0, 0, windowDays)

	out := []model.Task{}
	for _, t := range tasks {
		if t.EndDate == "" || t.Status == model.StatusDone {
			continue
		}
		end, err := timeutil.ParseDate(t.EndDate)
		if err != nil {
			continue
		}
		if end.Before(from) || end.After(to) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EndDate < out[j].EndDate
	})
	return out
}

// DayDecoration carries the display flags for one calendar cell. Purely
// cosmetic: none of these affect membership or notifications.
type DayDecoration struct {
	Date        string `json:"date"`
	Today       bool   `json:"today"`
	Selected    bool   `json:"selected"`
	Weekend     bool   `json:"weekend"`
	Holiday     bool   `json:"holiday"`
	HolidayName string `json:"holidayName,omitempty"`
}

func DecorateDay(day, today, selected time.Time, holidays holiday.Map) DayDecoration {
	name, isHoliday := holidays.Lookup(day)
	return DayDecoration{
		Date:        timeutil.FormatDate(day),
		Today:       timeutil.SameDay(day, today),
		Selected:    !selected.IsZero() && timeutil.SameDay(day, selected),
		Weekend:     timeutil.IsWeekend(day),
		Holiday:     isHoliday,
		HolidayName: name,
	}
}
