package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/pubsub"
	"github.com/julianstephens/habitkit/internal/tracker"
	"github.com/julianstephens/habitkit/internal/tui/components/calendar"
	"github.com/julianstephens/habitkit/internal/tui/components/habitlist"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateCategories
	StateTrash
	StateCalendar
	StateAddHabit
	StateAddCategory
	StateConfirmPurge
)

type HabitFormModel struct {
	Title      string
	Category   string
	TargetDays string
}

type CategoryFormModel struct {
	Name  string
	Color string
}

// trashEntry is one row of the trash view, either a habit or a category.
type trashEntry struct {
	habitID    int64
	categoryID int64
	label      string
}

type Model struct {
	service *tracker.Service
	scope   *tracker.Scope

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	habitList     habitlist.Model
	calendarModel calendar.Model

	habitsWatcher     *tracker.Watcher[[]models.Habit]
	categoriesWatcher *tracker.Watcher[[]models.Category]
	historySub        *pubsub.Subscription

	habits     []models.Habit
	categories []models.Category

	catCursor int

	trashEntries []trashEntry
	trashCursor  int
	purgeTarget  trashEntry

	form         *huh.Form
	habitForm    *HabitFormModel
	categoryForm *CategoryFormModel

	statusLine string
	quitting   bool
	width      int
	height     int
}

// NewModel builds the root TUI model. Live data arrives through watchers;
// mutations are dispatched on a scope and land back via invalidations, so
// the model never blocks the event loop on a write.
func NewModel(service *tracker.Service) (Model, error) {
	habitsWatcher, err := service.WatchHabits()
	if err != nil {
		return Model{}, fmt.Errorf("failed to watch habits: %w", err)
	}

	categoriesWatcher, err := service.WatchCategories()
	if err != nil {
		habitsWatcher.Cancel()
		return Model{}, fmt.Errorf("failed to watch categories: %w", err)
	}

	m := Model{
		service:           service,
		scope:             tracker.NewScope(context.Background()),
		state:             StateHabits,
		keys:              DefaultKeyMap(),
		help:              help.New(),
		habitList:         habitlist.New(nil, 0, 0),
		habitsWatcher:     habitsWatcher,
		categoriesWatcher: categoriesWatcher,
		historySub:        service.Broker().Subscribe(pubsub.TopicHistory),
	}

	return m, nil
}

// Shutdown cancels the watchers and the write scope. Pending scoped writes
// that have not started yet are dropped; in-flight ones are waited out.
func (m Model) Shutdown() {
	m.habitsWatcher.Cancel()
	m.categoriesWatcher.Cancel()
	m.historySub.Cancel()
	m.scope.Cancel()
	m.scope.Wait()
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	return [][]key.Binding{global, navigation}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForHabits(),
		m.waitForCategories(),
		m.waitForHistory(),
	)
}

// buildHabitItems joins the habit rows with their derived stats for display.
func (m Model) buildHabitItems(habits []models.Habit) []habitlist.Item {
	items := make([]habitlist.Item, 0, len(habits))
	for _, h := range habits {
		stats, err := m.service.HabitStats(h.ID)
		if err != nil {
			stats = tracker.Stats{}
		}
		items = append(items, habitlist.Item{Habit: h, Stats: stats})
	}
	return items
}

// reloadTrash rebuilds the combined habit/category trash listing.
func (m *Model) reloadTrash() {
	var entries []trashEntry

	habits, err := m.service.TrashedHabits()
	if err == nil {
		for _, h := range habits {
			entries = append(entries, trashEntry{
				habitID: h.ID,
				label:   fmt.Sprintf("habit    [%d] %s", h.ID, h.Title),
			})
		}
	}

	categories, err := m.service.TrashedCategories()
	if err == nil {
		for _, c := range categories {
			entries = append(entries, trashEntry{
				categoryID: c.ID,
				label:      fmt.Sprintf("category [%d] %s", c.ID, c.Name),
			})
		}
	}

	m.trashEntries = entries
	if m.trashCursor >= len(entries) {
		m.trashCursor = len(entries) - 1
	}
	if m.trashCursor < 0 {
		m.trashCursor = 0
	}
}
