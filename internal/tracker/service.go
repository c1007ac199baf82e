// Package tracker is the core of habitkit: commands that mutate the
// store, live subscriptions over it, and the derived-state computations
// (progress, calendar day-sets, completion flags) the presentation layer
// renders. All store access goes through storage.Provider; every mutation
// publishes an invalidation event so live queries re-evaluate.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/pubsub"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/utils"
	"github.com/julianstephens/habitkit/internal/validation"
)

type Service struct {
	store  storage.Provider
	broker *pubsub.Broker
	loc    *time.Location
}

// NewService creates a tracker service. The timezone from settings decides
// what "today" means; an unreadable or invalid timezone falls back to the
// system local zone.
func NewService(store storage.Provider, broker *pubsub.Broker) *Service {
	loc := time.Local
	if settings, err := store.GetSettings(); err == nil {
		if l, err := utils.LoadLocation(settings.Timezone); err == nil {
			loc = l
		} else {
			logger.Warn("Invalid timezone in settings, using local", "timezone", settings.Timezone)
		}
	}

	return &Service{
		store:  store,
		broker: broker,
		loc:    loc,
	}
}

// Broker exposes the invalidation broker, mainly for diagnostics.
func (s *Service) Broker() *pubsub.Broker {
	return s.broker
}

// Location returns the timezone used for day normalization.
func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) todayMillis() int64 {
	return utils.TodayMillis(s.loc)
}

// --- Habit commands ---

// AddHabit validates and inserts a new habit. Validation failures reach
// the caller before any write happens.
func (s *Service) AddHabit(title, category string, targetDays int) (models.Habit, error) {
	if err := validation.ValidateNewHabit(title, category, targetDays); err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		Title:       strings.TrimSpace(title),
		Category:    strings.TrimSpace(category),
		TargetDays:  targetDays,
		CreatedDate: time.Now().UnixMilli(),
	}

	id, err := s.store.InsertHabit(habit)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to add habit: %w", err)
	}
	habit.ID = id

	s.broker.Publish(pubsub.TopicHabits)
	logger.Debug("Habit added", "id", id, "title", habit.Title)
	return habit, nil
}

// Habits lists non-deleted habits, favorites first, newest first.
func (s *Service) Habits() ([]models.Habit, error) {
	return s.store.ListHabits()
}

// SearchHabits filters the habit list by a case-insensitive title query
// and an optional category name ("" matches all).
func (s *Service) SearchHabits(query, category string) ([]models.Habit, error) {
	habits, err := s.store.ListHabits()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var matched []models.Habit
	for _, h := range habits {
		if query != "" && !strings.Contains(strings.ToLower(h.Title), query) {
			continue
		}
		if category != "" && h.Category != category {
			continue
		}
		matched = append(matched, h)
	}
	return matched, nil
}

// TrashedHabits lists soft-deleted habits only.
func (s *Service) TrashedHabits() ([]models.Habit, error) {
	all, err := s.store.ListAllHabits(true)
	if err != nil {
		return nil, err
	}
	var trashed []models.Habit
	for _, h := range all {
		if h.IsDeleted {
			trashed = append(trashed, h)
		}
	}
	return trashed, nil
}

func (s *Service) GetHabit(id int64) (models.Habit, error) {
	return s.store.GetHabit(id)
}

// ToggleFavorite flips the favorite flag, which moves the habit within
// the default list ordering.
func (s *Service) ToggleFavorite(id int64) error {
	habit, err := s.store.GetHabit(id)
	if err != nil {
		return err
	}
	habit.IsFavorite = !habit.IsFavorite
	if err := s.store.UpdateHabit(habit); err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}
	s.broker.Publish(pubsub.TopicHabits)
	return nil
}

// UpdateNote replaces the habit's free-text description.
func (s *Service) UpdateNote(id int64, note string) error {
	habit, err := s.store.GetHabit(id)
	if err != nil {
		return err
	}
	habit.Description = note
	if err := s.store.UpdateHabit(habit); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	s.broker.Publish(pubsub.TopicHabits)
	return nil
}

// SoftDeleteHabit moves a habit to the trash. History rows stay put so a
// restore brings the streak back untouched.
func (s *Service) SoftDeleteHabit(id int64) error {
	return s.setHabitDeleted(id, true)
}

// RestoreHabit brings a soft-deleted habit back to the active list.
func (s *Service) RestoreHabit(id int64) error {
	return s.setHabitDeleted(id, false)
}

func (s *Service) setHabitDeleted(id int64, deleted bool) error {
	habit, err := s.store.GetHabit(id)
	if err != nil {
		return err
	}
	if habit.IsDeleted == deleted {
		if deleted {
			return fmt.Errorf("habit %q is already deleted", habit.Title)
		}
		return fmt.Errorf("habit %q is not deleted", habit.Title)
	}
	habit.IsDeleted = deleted
	if err := s.store.UpdateHabit(habit); err != nil {
		return err
	}
	s.broker.Publish(pubsub.TopicHabits)
	return nil
}

// PurgeHabit permanently removes a habit and cascades away its history.
// The storage operation itself performs no lifecycle check; the CLI and
// TUI only surface purge from the trash view.
func (s *Service) PurgeHabit(id int64) error {
	if err := s.store.DeleteHabit(id); err != nil {
		return err
	}
	s.broker.Publish(pubsub.TopicHabits, pubsub.HistoryTopic(id), pubsub.TopicHistory)
	logger.Debug("Habit purged", "id", id)
	return nil
}

// --- Completion commands ---

// SetTodayStatus marks or unmarks the habit for today. Marking an
// already-marked day is a no-op (idempotent insert), as is unmarking an
// unmarked one.
func (s *Service) SetTodayStatus(habitID int64, completed bool) error {
	today := s.todayMillis()
	var err error
	if completed {
		err = s.store.InsertHistory(habitID, today)
	} else {
		err = s.store.DeleteHistory(habitID, today)
	}
	if err != nil {
		return fmt.Errorf("failed to set today's status: %w", err)
	}
	s.broker.Publish(pubsub.HistoryTopic(habitID), pubsub.TopicHistory)
	return nil
}

// ToggleDateCompletion flips the completion state of one calendar day.
// It is a read-modify-write: two racing toggles on the same key resolve
// by the store's idempotent insert/exact-row delete, which can lose the
// later intent but never corrupts state.
func (s *Service) ToggleDateCompletion(habitID int64, day int, month time.Month, year int) error {
	date := utils.DateMillis(year, month, day, s.loc)

	completed, err := s.store.IsHabitCompleted(habitID, date)
	if err != nil {
		return fmt.Errorf("failed to check completion: %w", err)
	}

	if completed {
		err = s.store.DeleteHistory(habitID, date)
	} else {
		err = s.store.InsertHistory(habitID, date)
	}
	if err != nil {
		return fmt.Errorf("failed to toggle completion: %w", err)
	}

	s.broker.Publish(pubsub.HistoryTopic(habitID), pubsub.TopicHistory)
	return nil
}

// CompletedToday reports whether the habit has a completion row for today.
func (s *Service) CompletedToday(habitID int64) (bool, error) {
	return s.store.IsHabitCompleted(habitID, s.todayMillis())
}

// CompletionCount returns the all-time number of completed days.
func (s *Service) CompletionCount(habitID int64) (int, error) {
	return s.store.GetCompletionCount(habitID)
}

// HistoryDates returns every completion day marker for the habit,
// flattened from the stored history rows.
func (s *Service) HistoryDates(habitID int64) ([]int64, error) {
	history, err := s.store.GetHistory(habitID)
	if err != nil {
		return nil, err
	}
	dates := make([]int64, 0, len(history))
	for _, h := range history {
		dates = append(dates, h.DateCompleted)
	}
	return dates, nil
}

// --- Category commands ---

// AddCategory validates and inserts a category at the end of the display
// order (orderIndex = current count).
func (s *Service) AddCategory(name string, color int) (models.Category, error) {
	if err := validation.ValidateNewCategory(name); err != nil {
		return models.Category{}, err
	}

	existing, err := s.store.ListCategories(false)
	if err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		Name:       strings.TrimSpace(name),
		Color:      color,
		OrderIndex: len(existing),
	}

	id, err := s.store.InsertCategory(category)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to add category: %w", err)
	}
	category.ID = id

	s.broker.Publish(pubsub.TopicCategories)
	return category, nil
}

// Categories lists categories in display order.
func (s *Service) Categories() ([]models.Category, error) {
	return s.store.ListCategories(false)
}

func (s *Service) GetCategory(id int64) (models.Category, error) {
	return s.store.GetCategory(id)
}

// TrashedCategories lists soft-deleted categories only.
func (s *Service) TrashedCategories() ([]models.Category, error) {
	all, err := s.store.ListCategories(true)
	if err != nil {
		return nil, err
	}
	var trashed []models.Category
	for _, c := range all {
		if c.IsDeleted {
			trashed = append(trashed, c)
		}
	}
	return trashed, nil
}

// SoftDeleteCategory moves a category to the trash via the batch update
// path, so the flag flip shares its atomicity with bulk reorder.
func (s *Service) SoftDeleteCategory(id int64) error {
	return s.setCategoryDeleted(id, true)
}

// RestoreCategory brings a soft-deleted category back.
func (s *Service) RestoreCategory(id int64) error {
	return s.setCategoryDeleted(id, false)
}

func (s *Service) setCategoryDeleted(id int64, deleted bool) error {
	category, err := s.store.GetCategory(id)
	if err != nil {
		return err
	}
	if category.IsDeleted == deleted {
		if deleted {
			return fmt.Errorf("category %q is already deleted", category.Name)
		}
		return fmt.Errorf("category %q is not deleted", category.Name)
	}
	category.IsDeleted = deleted
	if err := s.store.UpdateCategories([]models.Category{category}); err != nil {
		return err
	}
	s.broker.Publish(pubsub.TopicCategories)
	return nil
}

// PurgeCategory permanently removes a category and returns how many
// habits still reference its name. Those habits keep the stale name as
// plain text; nothing reassigns or deletes them.
func (s *Service) PurgeCategory(id int64) (orphaned int, err error) {
	category, err := s.store.GetCategory(id)
	if err != nil {
		return 0, err
	}

	habits, err := s.store.ListAllHabits(true)
	if err != nil {
		return 0, err
	}
	for _, h := range habits {
		if h.Category == category.Name {
			orphaned++
		}
	}

	if err := s.store.DeleteCategory(id); err != nil {
		return 0, err
	}

	if orphaned > 0 {
		logger.Warn("Category purged with habits still referencing it", "category", category.Name, "habits", orphaned)
	}
	s.broker.Publish(pubsub.TopicCategories)
	return orphaned, nil
}

// ReorderCategories rewrites order_index to each category's position in
// the given sequence (0-based, contiguous) as a single all-or-nothing
// batch.
func (s *Service) ReorderCategories(ordered []models.Category) error {
	batch := make([]models.Category, len(ordered))
	for i, c := range ordered {
		c.OrderIndex = i
		batch[i] = c
	}
	if err := s.store.UpdateCategories(batch); err != nil {
		return fmt.Errorf("failed to reorder categories: %w", err)
	}
	s.broker.Publish(pubsub.TopicCategories)
	return nil
}

// --- Settings commands ---

func (s *Service) Settings() (models.Settings, error) {
	return s.store.GetSettings()
}

// SaveSettings validates and persists the user preferences, updating the
// service's timezone if it changed.
func (s *Service) SaveSettings(settings models.Settings) error {
	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := s.store.SaveSettings(settings); err != nil {
		return err
	}
	if loc, err := utils.LoadLocation(settings.Timezone); err == nil {
		s.loc = loc
	}
	return nil
}
