package tracker

import (
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/utils"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		target int
		want   float64
	}{
		{"zero count", 0, 21, 0},
		{"halfway", 10, 20, 0.5},
		{"complete", 21, 21, 1},
		{"over target clamps", 30, 21, 1},
		{"zero target", 5, 0, 0},
		{"negative target", 5, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.count, tt.target); got != tt.want {
				t.Errorf("Progress(%d, %d) = %v, want %v", tt.count, tt.target, got, tt.want)
			}
		})
	}
}

func TestFinished(t *testing.T) {
	if Finished(20, 21) {
		t.Error("Finished(20, 21) = true, want false")
	}
	if !Finished(21, 21) {
		t.Error("Finished(21, 21) = false, want true")
	}
	if !Finished(25, 21) {
		t.Error("Finished(25, 21) = false, want true")
	}
	// No target special case: the count/target comparison decides alone.
	if !Finished(5, 0) {
		t.Error("Finished(5, 0) = false, want true")
	}
	if !Finished(0, 0) {
		t.Error("Finished(0, 0) = false, want true")
	}
}

func TestMonthDaySet(t *testing.T) {
	loc := time.UTC

	dates := []int64{
		utils.DateMillis(2026, time.March, 1, loc),
		utils.DateMillis(2026, time.March, 15, loc),
		utils.DateMillis(2026, time.March, 31, loc),
		utils.DateMillis(2026, time.February, 28, loc),
		utils.DateMillis(2026, time.April, 1, loc),
	}

	got := MonthDaySet(dates, time.March, 2026, loc)

	for _, day := range []int{1, 15, 31} {
		if !got[day] {
			t.Errorf("MonthDaySet()[%d] = false, want true", day)
		}
	}
	if len(got) != 3 {
		t.Errorf("MonthDaySet() has %d days, want 3 (other months excluded)", len(got))
	}
}

func TestHabitStats(t *testing.T) {
	svc := setupTestService(t)

	habit, err := svc.AddHabit("Run", "Sport", 2)
	if err != nil {
		t.Fatalf("AddHabit() returned unexpected error: %v", err)
	}
	if err := svc.SetTodayStatus(habit.ID, true); err != nil {
		t.Fatalf("SetTodayStatus() returned unexpected error: %v", err)
	}
	if err := svc.ToggleDateCompletion(habit.ID, 1, time.January, 2020); err != nil {
		t.Fatalf("ToggleDateCompletion() returned unexpected error: %v", err)
	}

	stats, err := svc.HabitStats(habit.ID)
	if err != nil {
		t.Fatalf("HabitStats() returned unexpected error: %v", err)
	}
	if stats.CompletionCount != 2 {
		t.Errorf("CompletionCount = %d, want 2", stats.CompletionCount)
	}
	if !stats.CompletedToday {
		t.Error("CompletedToday = false, want true")
	}
	if !stats.Finished {
		t.Error("Finished = false with count 2 of target 2, want true")
	}
	if stats.Progress != 1 {
		t.Errorf("Progress = %v, want 1", stats.Progress)
	}
}
