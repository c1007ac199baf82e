package habits

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Note     HabitNoteCmd     `cmd:"" help:"Edit a habit's note."`
	Favorite HabitFavoriteCmd `cmd:"" help:"Toggle a habit's favorite flag."`
	Toggle   HabitToggleCmd   `cmd:"" help:"Toggle completion for a day (default: today)."`
	Stats    HabitStatsCmd    `cmd:"" help:"Show completion stats for a habit."`
	Calendar HabitCalendarCmd `cmd:"" help:"Show a monthly completion calendar."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Move a habit to the trash (soft delete)."`
	Restore  HabitRestoreCmd  `cmd:"" help:"Restore a habit from the trash."`
	Purge    HabitPurgeCmd    `cmd:"" help:"Permanently delete a trashed habit and its history."`
}

type HabitAddCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Category string `required:"" short:"c" help:"Category name for the habit."`
	Target   int    `short:"t" default:"21" help:"Target number of completed days."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.AddHabit(c.Title, c.Category, c.Target)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit [%d] %s (%s, target %d days)\n", habit.ID, habit.Title, habit.Category, habit.TargetDays)
	return nil
}

type HabitListCmd struct {
	Search   string `short:"s" help:"Filter by title substring."`
	Category string `short:"c" help:"Filter by category name."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Tracker.SearchHabits(c.Search, c.Category)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		stats, err := ctx.Tracker.HabitStats(h.ID)
		if err != nil {
			return err
		}
		fmt.Println(cli.FormatHabitLine(h, stats))
	}
	return nil
}

type HabitNoteCmd struct {
	ID   int64  `arg:"" help:"Habit id."`
	Note string `arg:"" help:"New note text (empty string clears it)."`
}

func (c *HabitNoteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.UpdateNote(c.ID, c.Note); err != nil {
		return err
	}
	fmt.Printf("Updated note for habit %d\n", c.ID)
	return nil
}

type HabitFavoriteCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (c *HabitFavoriteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.ToggleFavorite(c.ID); err != nil {
		return err
	}
	habit, err := ctx.Tracker.GetHabit(c.ID)
	if err != nil {
		return err
	}
	if habit.IsFavorite {
		fmt.Printf("Habit %q is now a favorite\n", habit.Title)
	} else {
		fmt.Printf("Habit %q is no longer a favorite\n", habit.Title)
	}
	return nil
}

type HabitToggleCmd struct {
	ID   int64  `arg:"" help:"Habit id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	loc := ctx.Tracker.Location()

	day := time.Now().In(loc)
	if c.Date != "" {
		parsed, err := time.ParseInLocation(constants.DateFormat, c.Date, loc)
		if err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
		}
		day = parsed
	}

	if err := ctx.Tracker.ToggleDateCompletion(c.ID, day.Day(), day.Month(), day.Year()); err != nil {
		return err
	}

	completed, err := ctx.Tracker.CompletedToday(c.ID)
	if c.Date == "" && err == nil {
		if completed {
			fmt.Printf("Marked habit %d complete for today\n", c.ID)
		} else {
			fmt.Printf("Unmarked habit %d for today\n", c.ID)
		}
		return nil
	}
	fmt.Printf("Toggled habit %d for %s\n", c.ID, day.Format(constants.DateFormat))
	return nil
}

type HabitStatsCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (c *HabitStatsCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.GetHabit(c.ID)
	if err != nil {
		return err
	}
	stats, err := ctx.Tracker.HabitStats(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", habit.Title, habit.Category)
	if habit.Description != "" {
		fmt.Printf("  Note: %s\n", habit.Description)
	}
	fmt.Printf("  Completed days: %d / %d\n", stats.CompletionCount, habit.TargetDays)
	fmt.Printf("  Progress: %s %.0f%%\n", cli.FormatProgressBar(stats.Progress, 20), stats.Progress*100)
	if stats.Finished {
		fmt.Println("  Goal reached!")
	}
	if stats.CompletedToday {
		fmt.Println("  Completed today: yes")
	} else {
		fmt.Println("  Completed today: no")
	}
	return nil
}

type HabitCalendarCmd struct {
	ID    int64 `arg:"" help:"Habit id."`
	Month int   `help:"Month to display (1-12, default: current)." default:"0"`
	Year  int   `help:"Year to display (default: current)." default:"0"`
}

func (c *HabitCalendarCmd) Run(ctx *cli.Context) error {
	loc := ctx.Tracker.Location()
	now := time.Now().In(loc)

	month := now.Month()
	year := now.Year()
	if c.Month != 0 {
		if c.Month < 1 || c.Month > 12 {
			return fmt.Errorf("invalid month: %d", c.Month)
		}
		month = time.Month(c.Month)
	}
	if c.Year != 0 {
		year = c.Year
	}

	habit, err := ctx.Tracker.GetHabit(c.ID)
	if err != nil {
		return err
	}
	days, err := ctx.Tracker.MonthDays(c.ID, month, year)
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s %d\n", habit.Title, month, year)
	fmt.Println(RenderMonth(days, month, year, loc))
	return nil
}

// RenderMonth draws an ASCII calendar grid, marking completed days.
func RenderMonth(done map[int]bool, month time.Month, year int, loc *time.Location) string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	out := "Mo Tu We Th Fr Sa Su\n"

	// Monday-first column offset for day 1.
	offset := (int(first.Weekday()) + 6) % 7
	for i := 0; i < offset; i++ {
		out += "   "
	}

	col := offset
	for day := 1; day <= daysInMonth; day++ {
		if done[day] {
			out += fmt.Sprintf("%2d●", day)
		} else {
			out += fmt.Sprintf("%2d ", day)
		}
		col++
		if col%7 == 0 {
			out += "\n"
		}
	}
	if col%7 != 0 {
		out += "\n"
	}
	return out
}

type HabitDeleteCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.SoftDeleteHabit(c.ID); err != nil {
		return err
	}
	fmt.Printf("Moved habit %d to the trash\n", c.ID)
	return nil
}

type HabitRestoreCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.RestoreHabit(c.ID); err != nil {
		return err
	}
	fmt.Printf("Restored habit %d\n", c.ID)
	return nil
}

type HabitPurgeCmd struct {
	ID    int64 `arg:"" help:"Habit id."`
	Force bool  `help:"Purge even if the habit is not in the trash."`
}

func (c *HabitPurgeCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.GetHabit(c.ID)
	if err != nil {
		return err
	}
	if !habit.IsDeleted && !c.Force {
		return fmt.Errorf("habit %q is not in the trash; delete it first or use --force", habit.Title)
	}

	count, _ := ctx.Tracker.CompletionCount(c.ID)
	if err := ctx.Tracker.PurgeHabit(c.ID); err != nil {
		return err
	}
	fmt.Printf("Permanently deleted habit %q and %d history entries\n", habit.Title, count)
	return nil
}
