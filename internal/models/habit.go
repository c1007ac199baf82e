package models

// Habit is a tracked recurring behavior with a day-count goal.
// Category is a soft reference by name; hard-deleting a category leaves
// the name in place on habits that use it.
type Habit struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	TargetDays  int    `json:"target_days"`
	IsFavorite  bool   `json:"is_favorite"`
	IsDeleted   bool   `json:"is_deleted"`
	CreatedDate int64  `json:"created_date"` // epoch milliseconds
}

// HabitHistory marks a single day a habit was completed. DateCompleted is
// local midnight in epoch milliseconds; at most one row exists per
// (HabitID, DateCompleted) pair.
type HabitHistory struct {
	ID            int64 `json:"id"`
	HabitID       int64 `json:"habit_id"`
	DateCompleted int64 `json:"date_completed"`
}
