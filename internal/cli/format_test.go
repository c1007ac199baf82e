package cli

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/tracker"
)

func TestFormatHabitLine(t *testing.T) {
	habit := models.Habit{ID: 3, Title: "Run", Category: "Sport", TargetDays: 21}

	t.Run("plain", func(t *testing.T) {
		got := FormatHabitLine(habit, tracker.Stats{CompletionCount: 5})
		if !strings.Contains(got, "[3] Run (Sport) 5/21") {
			t.Errorf("FormatHabitLine() = %q, want id, title, category and count", got)
		}
		if strings.Contains(got, "★") || strings.Contains(got, "DONE") {
			t.Errorf("FormatHabitLine() = %q, want no favorite star or DONE marker", got)
		}
	})

	t.Run("favorite and finished", func(t *testing.T) {
		fav := habit
		fav.IsFavorite = true
		got := FormatHabitLine(fav, tracker.Stats{CompletionCount: 21, Finished: true, CompletedToday: true})
		if !strings.Contains(got, "★") {
			t.Errorf("FormatHabitLine() = %q, want favorite star", got)
		}
		if !strings.Contains(got, "✓") {
			t.Errorf("FormatHabitLine() = %q, want completed-today check", got)
		}
		if !strings.HasSuffix(got, "DONE") {
			t.Errorf("FormatHabitLine() = %q, want DONE suffix", got)
		}
	})
}

func TestFormatProgressBar(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := FormatProgressBar(0, 10)
		if got != "[··········]" {
			t.Errorf("FormatProgressBar(0) = %q, want all empty", got)
		}
	})

	t.Run("full", func(t *testing.T) {
		got := FormatProgressBar(1, 10)
		if got != "[██████████]" {
			t.Errorf("FormatProgressBar(1) = %q, want all filled", got)
		}
	})

	t.Run("half", func(t *testing.T) {
		got := FormatProgressBar(0.5, 10)
		if !strings.Contains(got, "█████·····") {
			t.Errorf("FormatProgressBar(0.5) = %q, want 5 of 10 filled", got)
		}
	})

	t.Run("clamps overflow", func(t *testing.T) {
		got := FormatProgressBar(2, 10)
		if got != "[██████████]" {
			t.Errorf("FormatProgressBar(2) = %q, want clamped to full", got)
		}
	})
}

func TestFormatColor(t *testing.T) {
	tests := []struct {
		color int
		want  string
	}{
		{0x4361EE, "#4361EE"},
		{0, "#000000"},
		{0xFFFFFF, "#FFFFFF"},
		// Alpha byte from ARGB values is dropped.
		{0xFF4361EE, "#4361EE"},
	}

	for _, tt := range tests {
		if got := FormatColor(tt.color); got != tt.want {
			t.Errorf("FormatColor(%#x) = %q, want %q", tt.color, got, tt.want)
		}
	}
}
