package tracker

import (
	"time"

	"github.com/julianstephens/habitkit/internal/utils"
)

// Progress returns count/target clamped to [0, 1] for display. A
// non-positive target means "no progress" rather than a division fault.
func Progress(count, targetDays int) float64 {
	if targetDays <= 0 {
		return 0
	}
	ratio := float64(count) / float64(targetDays)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Finished reports whether the habit reached its target-day goal.
// Unlike Progress there is no special case for a non-positive target:
// finished is exactly count >= targetDays.
func Finished(count, targetDays int) bool {
	return count >= targetDays
}

// MonthDaySet filters completion day markers down to the given month and
// year and maps each to its day-of-month. The calendar view uses it to
// decide which cells are done.
func MonthDaySet(dates []int64, month time.Month, year int, loc *time.Location) map[int]bool {
	days := make(map[int]bool)
	for _, ms := range dates {
		t := utils.FromMillis(ms, loc)
		if t.Month() == month && t.Year() == year {
			days[t.Day()] = true
		}
	}
	return days
}

// Stats is the derived per-habit summary the list and detail views show.
type Stats struct {
	CompletionCount int
	Progress        float64
	Finished        bool
	CompletedToday  bool
}

// HabitStats computes the derived summary for one habit.
func (s *Service) HabitStats(habitID int64) (Stats, error) {
	habit, err := s.store.GetHabit(habitID)
	if err != nil {
		return Stats{}, err
	}

	count, err := s.store.GetCompletionCount(habitID)
	if err != nil {
		return Stats{}, err
	}

	today, err := s.CompletedToday(habitID)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		CompletionCount: count,
		Progress:        Progress(count, habit.TargetDays),
		Finished:        Finished(count, habit.TargetDays),
		CompletedToday:  today,
	}, nil
}

// MonthDays returns the day-of-month set of completions for the habit in
// the displayed (month, year).
func (s *Service) MonthDays(habitID int64, month time.Month, year int) (map[int]bool, error) {
	dates, err := s.HistoryDates(habitID)
	if err != nil {
		return nil, err
	}
	return MonthDaySet(dates, month, year, s.loc), nil
}
