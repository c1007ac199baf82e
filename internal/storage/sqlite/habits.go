package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitkit/internal/models"
)

const habitColumns = "id, title, description, category, target_days, is_favorite, is_deleted, created_date"

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	err := row.Scan(&h.ID, &h.Title, &h.Description, &h.Category, &h.TargetDays, &h.IsFavorite, &h.IsDeleted, &h.CreatedDate)
	return h, err
}

// ListHabits returns non-deleted habits, favorites first, newest first
// within each group.
func (s *Store) ListHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT ` + habitColumns + ` FROM habits
		WHERE is_deleted = 0
		ORDER BY is_favorite DESC, created_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// ListAllHabits returns every habit, optionally including soft-deleted
// ones (the trash view needs those).
func (s *Store) ListAllHabits(includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE 1=1"
	if !includeDeleted {
		query += " AND is_deleted = 0"
	}
	query += " ORDER BY is_favorite DESC, created_date DESC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id)
	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, fmt.Errorf("habit with id %d not found", id)
		}
		return models.Habit{}, err
	}
	return h, nil
}

// InsertHabit inserts a habit and returns its assigned id. A habit with
// ID 0 gets a fresh id; a habit carrying an existing id replaces that row
// (upsert semantics).
func (s *Store) InsertHabit(h models.Habit) (int64, error) {
	if h.ID == 0 {
		res, err := s.db.Exec(`
			INSERT INTO habits (title, description, category, target_days, is_favorite, is_deleted, created_date)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			h.Title, h.Description, h.Category, h.TargetDays, h.IsFavorite, h.IsDeleted, h.CreatedDate)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO habits (id, title, description, category, target_days, is_favorite, is_deleted, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Title, h.Description, h.Category, h.TargetDays, h.IsFavorite, h.IsDeleted, h.CreatedDate)
	if err != nil {
		return 0, err
	}
	return h.ID, nil
}

func (s *Store) UpdateHabit(h models.Habit) error {
	res, err := s.db.Exec(`
		UPDATE habits
		SET title = ?, description = ?, category = ?, target_days = ?, is_favorite = ?, is_deleted = ?, created_date = ?
		WHERE id = ?`,
		h.Title, h.Description, h.Category, h.TargetDays, h.IsFavorite, h.IsDeleted, h.CreatedDate, h.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("habit with id %d not found", h.ID)
	}
	return nil
}

// DeleteHabit permanently removes a habit and all of its history rows.
// Both deletes run in one transaction so a failure leaves the habit and
// its history intact. The operation performs no lifecycle check; callers
// expose it only from the trash flow.
func (s *Store) DeleteHabit(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habit_history WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete history for habit %d: %w", id, err)
	}

	res, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete habit %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("habit with id %d not found", id)
	}

	return tx.Commit()
}
