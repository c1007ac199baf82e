package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/tracker"
)

// FormatHabitLine renders one habit for list output.
func FormatHabitLine(h models.Habit, stats tracker.Stats) string {
	var b strings.Builder

	if h.IsFavorite {
		b.WriteString("★ ")
	} else {
		b.WriteString("  ")
	}

	if stats.CompletedToday {
		b.WriteString("✓ ")
	} else {
		b.WriteString("○ ")
	}

	fmt.Fprintf(&b, "[%d] %s (%s) %d/%d", h.ID, h.Title, h.Category, stats.CompletionCount, h.TargetDays)

	if stats.Finished {
		b.WriteString(" DONE")
	}

	return b.String()
}

// FormatProgressBar renders a fixed-width ASCII progress bar.
func FormatProgressBar(ratio float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}

// FormatColor renders a packed ARGB/RGB integer as a hex color string.
func FormatColor(color int) string {
	return fmt.Sprintf("#%06X", color&0xFFFFFF)
}
