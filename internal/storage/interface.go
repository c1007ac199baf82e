package storage

import "github.com/julianstephens/habitkit/internal/models"

// Provider is the single mediator for all persistent state. Every
// operation is atomic with respect to the store; multi-row writes
// (UpdateCategories, DeleteHabit's cascade) apply all-or-nothing.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	ListHabits() ([]models.Habit, error)
	ListAllHabits(includeDeleted bool) ([]models.Habit, error)
	GetHabit(id int64) (models.Habit, error)
	InsertHabit(models.Habit) (int64, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id int64) error

	// Habit history
	InsertHistory(habitID, date int64) error
	DeleteHistory(habitID, date int64) error
	IsHabitCompleted(habitID, date int64) (bool, error)
	GetCompletionCount(habitID int64) (int, error)
	GetHistory(habitID int64) ([]models.HabitHistory, error)

	// Categories
	ListCategories(includeDeleted bool) ([]models.Category, error)
	GetCategory(id int64) (models.Category, error)
	InsertCategory(models.Category) (int64, error)
	UpdateCategories([]models.Category) error
	DeleteCategory(id int64) error

	// Utils
	GetConfigPath() string
}
