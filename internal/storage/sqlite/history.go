package sqlite

import "github.com/julianstephens/habitkit/internal/models"

// Completion history operations. A history row is a per-day presence
// fact: the UNIQUE (habit_id, date_completed) constraint plus INSERT OR
// IGNORE make marking idempotent, so two racing marks for the same day
// collapse to one row.

// InsertHistory marks the habit complete for the given day marker.
// Inserting an already-present (habitID, date) pair is silently ignored.
func (s *Store) InsertHistory(habitID, date int64) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO habit_history (habit_id, date_completed)
		VALUES (?, ?)`, habitID, date)
	return err
}

// DeleteHistory removes the completion row for the exact day, if present.
func (s *Store) DeleteHistory(habitID, date int64) error {
	_, err := s.db.Exec(`
		DELETE FROM habit_history WHERE habit_id = ? AND date_completed = ?`,
		habitID, date)
	return err
}

// IsHabitCompleted reports whether a completion row exists for the day.
func (s *Store) IsHabitCompleted(habitID, date int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM habit_history WHERE habit_id = ? AND date_completed = ?)`,
		habitID, date).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// GetCompletionCount returns the number of days the habit has ever been
// marked complete, across all time.
func (s *Store) GetCompletionCount(habitID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM habit_history WHERE habit_id = ?`, habitID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetHistory returns all completion rows for the habit, oldest first.
func (s *Store) GetHistory(habitID int64) ([]models.HabitHistory, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, date_completed FROM habit_history
		WHERE habit_id = ? ORDER BY date_completed`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.HabitHistory
	for rows.Next() {
		var h models.HabitHistory
		if err := rows.Scan(&h.ID, &h.HabitID, &h.DateCompleted); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
