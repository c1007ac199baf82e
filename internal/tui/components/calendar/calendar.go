package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToggleDayMsg asks the parent to flip a completion date for the habit
// this calendar was opened on.
type ToggleDayMsg struct {
	HabitID int64
	Day     int
	Month   int
	Year    int
}

// MonthChangedMsg asks the parent to reload the day set for the new month.
type MonthChangedMsg struct {
	HabitID int64
	Month   int
	Year    int
}

type CloseMsg struct{}

type KeyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	Toggle    key.Binding
	Back      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next month"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "next week"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "back"),
		),
	}
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	weekdayStyle  = lipgloss.NewStyle().Faint(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	todayStyle    = lipgloss.NewStyle().Underline(true)
	ordinaryStyle = lipgloss.NewStyle()
)

type Model struct {
	habitID int64
	title   string
	month   int
	year    int
	cursor  int
	done    map[int]bool
	loc     *time.Location
	keys    KeyMap
}

func New(habitID int64, title string, month, year int, done map[int]bool, loc *time.Location) Model {
	now := time.Now().In(loc)
	cursor := 1
	if int(now.Month()) == month && now.Year() == year {
		cursor = now.Day()
	}
	return Model{
		habitID: habitID,
		title:   title,
		month:   month,
		year:    year,
		cursor:  cursor,
		done:    done,
		loc:     loc,
		keys:    DefaultKeyMap(),
	}
}

func (m *Model) SetDays(done map[int]bool) {
	m.done = done
}

// Position reports which habit and month the calendar is showing.
func (m Model) Position() (habitID int64, month, year int) {
	return m.habitID, m.month, m.year
}

func (m Model) daysInMonth() int {
	return time.Date(m.year, time.Month(m.month)+1, 0, 0, 0, 0, 0, m.loc).Day()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, m.keys.PrevMonth):
			m.month--
			if m.month < 1 {
				m.month = 12
				m.year--
			}
			m.cursor = 1
			return m, m.monthChanged()
		case key.Matches(msg, m.keys.NextMonth):
			m.month++
			if m.month > 12 {
				m.month = 1
				m.year++
			}
			m.cursor = 1
			return m, m.monthChanged()
		case key.Matches(msg, m.keys.PrevDay):
			if m.cursor > 1 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.NextDay):
			if m.cursor < m.daysInMonth() {
				m.cursor++
			}
		case key.Matches(msg, m.keys.PrevWeek):
			if m.cursor > 7 {
				m.cursor -= 7
			}
		case key.Matches(msg, m.keys.NextWeek):
			if m.cursor+7 <= m.daysInMonth() {
				m.cursor += 7
			}
		case key.Matches(msg, m.keys.Toggle):
			habitID, day, month, year := m.habitID, m.cursor, m.month, m.year
			return m, func() tea.Msg {
				return ToggleDayMsg{HabitID: habitID, Day: day, Month: month, Year: year}
			}
		}
	}
	return m, nil
}

func (m Model) monthChanged() tea.Cmd {
	habitID, month, year := m.habitID, m.month, m.year
	return func() tea.Msg {
		return MonthChangedMsg{HabitID: habitID, Month: month, Year: year}
	}
}

func (m Model) View() string {
	var b strings.Builder

	first := time.Date(m.year, time.Month(m.month), 1, 0, 0, 0, 0, m.loc)
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s — %s %d", m.title, first.Month(), m.year)))
	b.WriteString("\n\n")
	b.WriteString(weekdayStyle.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	// Monday-first column for the 1st of the month.
	offset := (int(first.Weekday()) + 6) % 7
	col := 0
	for ; col < offset; col++ {
		b.WriteString("   ")
	}

	now := time.Now().In(m.loc)
	for day := 1; day <= m.daysInMonth(); day++ {
		cell := fmt.Sprintf("%2d", day)
		style := ordinaryStyle
		if m.done[day] {
			style = doneStyle
			cell = fmt.Sprintf("%2s", "●")
		}
		if now.Day() == day && int(now.Month()) == m.month && now.Year() == m.year {
			style = style.Inherit(todayStyle)
		}
		if day == m.cursor {
			style = style.Inherit(cursorStyle)
		}
		b.WriteString(style.Render(cell))
		b.WriteString(" ")
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(weekdayStyle.Render("space toggle · p/n month · esc back"))
	return b.String()
}
