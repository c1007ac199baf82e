package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/tui/components/calendar"
	"github.com/julianstephens/habitkit/internal/tui/components/habitlist"
)

type habitsUpdatedMsg struct {
	habits []models.Habit
}

type categoriesUpdatedMsg struct {
	categories []models.Category
}

type historyChangedMsg struct{}

func (m Model) waitForHabits() tea.Cmd {
	w := m.habitsWatcher
	return func() tea.Msg {
		habits, ok := <-w.C
		if !ok {
			return nil
		}
		return habitsUpdatedMsg{habits: habits}
	}
}

func (m Model) waitForCategories() tea.Cmd {
	w := m.categoriesWatcher
	return func() tea.Msg {
		categories, ok := <-w.C
		if !ok {
			return nil
		}
		return categoriesUpdatedMsg{categories: categories}
	}
}

func (m Model) waitForHistory() tea.Cmd {
	sub := m.historySub
	return func() tea.Msg {
		<-sub.C
		return historyChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		frameX, frameY := docStyle.GetFrameSize()
		m.habitList.SetSize(msg.Width-frameX, msg.Height-frameY-4)
		return m, nil

	case habitsUpdatedMsg:
		m.habits = msg.habits
		m.habitList.SetItems(m.buildHabitItems(msg.habits))
		if m.state == StateTrash {
			m.reloadTrash()
		}
		return m, m.waitForHabits()

	case categoriesUpdatedMsg:
		m.categories = msg.categories
		if m.catCursor >= len(m.categories) && m.catCursor > 0 {
			m.catCursor = len(m.categories) - 1
		}
		if m.state == StateTrash {
			m.reloadTrash()
		}
		return m, m.waitForCategories()

	case historyChangedMsg:
		m.habitList.SetItems(m.buildHabitItems(m.habits))
		if m.state == StateCalendar {
			m.refreshCalendarDays()
		}
		return m, m.waitForHistory()

	case habitlist.AddHabitMsg:
		return m.openHabitForm(), nil

	case habitlist.AddCategoryMsg:
		return m.openCategoryForm(StateHabits), nil

	case habitlist.ToggleTodayMsg:
		id := msg.ID
		completed := false
		if item, ok := m.habitList.Selected(); ok && item.Habit.ID == id {
			completed = item.Stats.CompletedToday
		}
		m.scope.Go("toggle today", func() error {
			return m.service.SetTodayStatus(id, !completed)
		})
		return m, nil

	case habitlist.FavoriteMsg:
		id := msg.ID
		m.scope.Go("toggle favorite", func() error {
			return m.service.ToggleFavorite(id)
		})
		return m, nil

	case habitlist.DeleteHabitMsg:
		id := msg.ID
		m.scope.Go("delete habit", func() error {
			return m.service.SoftDeleteHabit(id)
		})
		return m, nil

	case habitlist.RestoreHabitMsg:
		id := msg.ID
		m.scope.Go("restore habit", func() error {
			return m.service.RestoreHabit(id)
		})
		return m, nil

	case habitlist.OpenCalendarMsg:
		return m.openCalendar(msg.ID)

	case calendar.ToggleDayMsg:
		habitID, day, month, year := msg.HabitID, msg.Day, msg.Month, msg.Year
		m.scope.Go("toggle date", func() error {
			return m.service.ToggleDateCompletion(habitID, day, time.Month(month), year)
		})
		return m, nil

	case calendar.MonthChangedMsg:
		m.refreshCalendarDays()
		return m, nil

	case calendar.CloseMsg:
		m.state = StateHabits
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Form states route everything else to the active form.
	if m.form != nil && (m.state == StateAddHabit || m.state == StateAddCategory) {
		return m.updateForm(msg)
	}

	switch m.state {
	case StateHabits:
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		cmds = append(cmds, cmd)
	case StateCalendar:
		var cmd tea.Cmd
		m.calendarModel, cmd = m.calendarModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Forms own the keyboard while active.
	if m.form != nil && (m.state == StateAddHabit || m.state == StateAddCategory) {
		if msg.String() == "esc" {
			m.form = nil
			m.state = m.previousState
			return m, nil
		}
		return m.updateForm(msg)
	}

	if m.state == StateConfirmPurge {
		return m.handlePurgeConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.state == StateHabits && m.habitList.Filtering() {
			break
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.state <= StateTrash {
			m.state = (m.state + 1) % 3
			if m.state == StateTrash {
				m.reloadTrash()
			}
			return m, nil
		}

	case key.Matches(msg, m.keys.ShiftTab):
		if m.state <= StateTrash {
			m.state = (m.state + 2) % 3
			if m.state == StateTrash {
				m.reloadTrash()
			}
			return m, nil
		}
	}

	switch m.state {
	case StateHabits:
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		return m, cmd
	case StateCategories:
		return m.handleCategoriesKey(msg)
	case StateTrash:
		return m.handleTrashKey(msg)
	case StateCalendar:
		var cmd tea.Cmd
		m.calendarModel, cmd = m.calendarModel.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleCategoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.catCursor > 0 {
			m.catCursor--
		}
	case "down", "j":
		if m.catCursor < len(m.categories)-1 {
			m.catCursor++
		}
	case "K", "shift+up":
		if m.catCursor > 0 {
			m.moveCategory(m.catCursor, m.catCursor-1)
			m.catCursor--
		}
	case "J", "shift+down":
		if m.catCursor < len(m.categories)-1 {
			m.moveCategory(m.catCursor, m.catCursor+1)
			m.catCursor++
		}
	case "a":
		return m.openCategoryForm(StateCategories), nil
	case "d":
		if m.catCursor < len(m.categories) {
			id := m.categories[m.catCursor].ID
			m.scope.Go("delete category", func() error {
				return m.service.SoftDeleteCategory(id)
			})
		}
	}
	return m, nil
}

// moveCategory swaps two rows and persists the full new ordering.
func (m *Model) moveCategory(from, to int) {
	ordered := make([]models.Category, len(m.categories))
	copy(ordered, m.categories)
	ordered[from], ordered[to] = ordered[to], ordered[from]
	m.categories = ordered

	snapshot := make([]models.Category, len(ordered))
	copy(snapshot, ordered)
	m.scope.Go("reorder categories", func() error {
		return m.service.ReorderCategories(snapshot)
	})
}

func (m Model) handleTrashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.trashCursor > 0 {
			m.trashCursor--
		}
	case "down", "j":
		if m.trashCursor < len(m.trashEntries)-1 {
			m.trashCursor++
		}
	case "r":
		if m.trashCursor < len(m.trashEntries) {
			entry := m.trashEntries[m.trashCursor]
			if entry.habitID != 0 {
				id := entry.habitID
				m.scope.Go("restore habit", func() error {
					return m.service.RestoreHabit(id)
				})
			} else {
				id := entry.categoryID
				m.scope.Go("restore category", func() error {
					return m.service.RestoreCategory(id)
				})
			}
		}
	case "x":
		if m.trashCursor < len(m.trashEntries) {
			m.purgeTarget = m.trashEntries[m.trashCursor]
			m.previousState = m.state
			m.state = StateConfirmPurge
		}
	}
	return m, nil
}

func (m Model) handlePurgeConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		entry := m.purgeTarget
		if entry.habitID != 0 {
			id := entry.habitID
			m.scope.Go("purge habit", func() error {
				return m.service.PurgeHabit(id)
			})
		} else {
			id := entry.categoryID
			m.scope.Go("purge category", func() error {
				_, err := m.service.PurgeCategory(id)
				return err
			})
		}
		m.state = m.previousState
		m.purgeTarget = trashEntry{}
	case "n", "N", "esc", "q":
		m.state = m.previousState
		m.purgeTarget = trashEntry{}
	}
	return m, nil
}

// --- Calendar ---

func (m Model) openCalendar(habitID int64) (tea.Model, tea.Cmd) {
	habit, err := m.service.GetHabit(habitID)
	if err != nil {
		m.statusLine = err.Error()
		return m, nil
	}

	loc := m.service.Location()
	now := time.Now().In(loc)
	days, err := m.service.MonthDays(habitID, now.Month(), now.Year())
	if err != nil {
		m.statusLine = err.Error()
		return m, nil
	}

	m.calendarModel = calendar.New(habitID, habit.Title, int(now.Month()), now.Year(), days, loc)
	m.previousState = m.state
	m.state = StateCalendar
	return m, nil
}

func (m *Model) refreshCalendarDays() {
	habitID, month, year := m.calendarModel.Position()
	days, err := m.service.MonthDays(habitID, time.Month(month), year)
	if err != nil {
		m.statusLine = err.Error()
		return
	}
	m.calendarModel.SetDays(days)
}

// --- Forms ---

func (m Model) openHabitForm() Model {
	m.habitForm = &HabitFormModel{
		TargetDays: strconv.Itoa(constants.DefaultTargetDays),
	}

	options := make([]huh.Option[string], 0, len(m.categories))
	for _, c := range m.categories {
		options = append(options, huh.NewOption(c.Name, c.Name))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&m.habitForm.Title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
	}
	if len(options) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Category").
			Options(options...).
			Value(&m.habitForm.Category))
	} else {
		fields = append(fields, huh.NewInput().
			Title("Category").
			Value(&m.habitForm.Category).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("category is required")
				}
				return nil
			}))
	}
	fields = append(fields, huh.NewInput().
		Title("Target days").
		Value(&m.habitForm.TargetDays).
		Validate(func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive number")
			}
			return nil
		}))

	m.form = huh.NewForm(huh.NewGroup(fields...))
	m.previousState = m.state
	m.state = StateAddHabit
	return m
}

func (m Model) openCategoryForm(returnTo SessionState) Model {
	m.categoryForm = &CategoryFormModel{Color: "#4361EE"}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&m.categoryForm.Name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Color (hex)").
			Value(&m.categoryForm.Color).
			Validate(func(s string) error {
				_, err := parseHexColor(s)
				return err
			}),
	))
	m.previousState = returnTo
	m.state = StateAddCategory
	return m
}

func parseHexColor(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return 0, fmt.Errorf("color is required")
	}
	n, err := strconv.ParseInt(s, 16, 64)
	if err != nil || n < 0 || n > 0xFFFFFF {
		return 0, fmt.Errorf("must be a hex color like #4361EE")
	}
	return int(n), nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case StateAddHabit:
			title := strings.TrimSpace(m.habitForm.Title)
			category := strings.TrimSpace(m.habitForm.Category)
			targetDays, _ := strconv.Atoi(strings.TrimSpace(m.habitForm.TargetDays))
			m.scope.Go("add habit", func() error {
				_, err := m.service.AddHabit(title, category, targetDays)
				return err
			})
		case StateAddCategory:
			name := strings.TrimSpace(m.categoryForm.Name)
			color, _ := parseHexColor(m.categoryForm.Color)
			m.scope.Go("add category", func() error {
				_, err := m.service.AddCategory(name, color)
				return err
			})
		}
		m.form = nil
		m.state = m.previousState
		return m, nil
	}

	if m.form.State == huh.StateAborted {
		m.form = nil
		m.state = m.previousState
		return m, nil
	}

	return m, cmd
}
