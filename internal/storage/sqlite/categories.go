package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitkit/internal/models"
)

const categoryColumns = "id, name, color, order_index, is_deleted"

func scanCategory(row interface{ Scan(...any) error }) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.OrderIndex, &c.IsDeleted)
	return c, err
}

// ListCategories returns categories in display order.
func (s *Store) ListCategories(includeDeleted bool) ([]models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE 1=1"
	if !includeDeleted {
		query += " AND is_deleted = 0"
	}
	query += " ORDER BY order_index"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) GetCategory(id int64) (models.Category, error) {
	row := s.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, fmt.Errorf("category with id %d not found", id)
		}
		return models.Category{}, err
	}
	return c, nil
}

// InsertCategory inserts a category and returns its assigned id.
func (s *Store) InsertCategory(c models.Category) (int64, error) {
	if c.ID == 0 {
		res, err := s.db.Exec(`
			INSERT INTO categories (name, color, order_index, is_deleted)
			VALUES (?, ?, ?, ?)`,
			c.Name, c.Color, c.OrderIndex, c.IsDeleted)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO categories (id, name, color, order_index, is_deleted)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Color, c.OrderIndex, c.IsDeleted)
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

// UpdateCategories applies a batch of category updates all-or-nothing.
// Used for bulk reorder and for flipping soft-delete flags.
func (s *Store) UpdateCategories(batch []models.Category) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE categories SET name = ?, color = ?, order_index = ?, is_deleted = ?
		WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range batch {
		res, err := stmt.Exec(c.Name, c.Color, c.OrderIndex, c.IsDeleted, c.ID)
		if err != nil {
			return fmt.Errorf("failed to update category %d: %w", c.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("category with id %d not found", c.ID)
		}
	}

	return tx.Commit()
}

// DeleteCategory permanently removes a category. Habits referencing it by
// name keep the stale name; no cascade or reassignment happens here.
func (s *Store) DeleteCategory(id int64) error {
	res, err := s.db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("category with id %d not found", id)
	}
	return nil
}
