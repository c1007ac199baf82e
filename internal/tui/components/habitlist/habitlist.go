package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/tracker"
)

type AddHabitMsg struct{}

type AddCategoryMsg struct{}

type ToggleTodayMsg struct {
	ID int64
}

type FavoriteMsg struct {
	ID int64
}

type DeleteHabitMsg struct {
	ID int64
}

type RestoreHabitMsg struct {
	ID int64
}

type OpenCalendarMsg struct {
	ID int64
}

type Item struct {
	Habit models.Habit
	Stats tracker.Stats
}

func (i Item) Title() string {
	title := i.Habit.Title
	if i.Habit.IsDeleted {
		title = "[DELETED] " + title
	} else if i.Stats.CompletedToday {
		title = "✓ " + title
	} else {
		title = "○ " + title
	}
	if i.Habit.IsFavorite {
		title = "★ " + title
	}
	return title
}

func (i Item) Description() string {
	if i.Habit.IsDeleted {
		return "can restore with 'r'"
	}
	desc := fmt.Sprintf("%s · %d/%d days", i.Habit.Category, i.Stats.CompletionCount, i.Habit.TargetDays)
	if i.Stats.Finished {
		desc += " · goal reached!"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Add         key.Binding
	AddCategory key.Binding
	Toggle      key.Binding
	Favorite    key.Binding
	Calendar    key.Binding
	Delete      key.Binding
	Restore     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		AddCategory: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add category"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "toggle today"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Calendar: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "calendar"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Favorite, keys.Calendar, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.AddCategory, keys.Toggle, keys.Favorite, keys.Calendar, keys.Delete, keys.Restore}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func (m *Model) SetItems(items []Item) {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}
	m.list.SetItems(listItems)
}

// Filtering reports whether the list's fuzzy filter input is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the habit under the cursor, if any.
func (m Model) Selected() (Item, bool) {
	item, ok := m.list.SelectedItem().(Item)
	return item, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.AddCategory):
			return m, func() tea.Msg { return AddCategoryMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.Selected(); ok && !i.Habit.IsDeleted {
				return m, func() tea.Msg { return ToggleTodayMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Favorite):
			if i, ok := m.Selected(); ok && !i.Habit.IsDeleted {
				return m, func() tea.Msg { return FavoriteMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Calendar):
			if i, ok := m.Selected(); ok && !i.Habit.IsDeleted {
				return m, func() tea.Msg { return OpenCalendarMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok && !i.Habit.IsDeleted {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.Selected(); ok && i.Habit.IsDeleted {
				return m, func() tea.Msg { return RestoreHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
