package models

// Category is a user-defined, colored grouping label for habits.
// OrderIndex controls display order and is reassigned contiguously on
// reorder. Color is a packed ARGB integer.
type Category struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Color      int    `json:"color"`
	OrderIndex int    `json:"order_index"`
	IsDeleted  bool   `json:"is_deleted"`
}
