package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateHabits:
		content = m.habitList.View()
	case StateCategories:
		content = m.viewCategories()
	case StateTrash:
		content = m.viewTrash()
	case StateCalendar:
		content = docStyle.Render(m.calendarModel.View())
	case StateAddHabit, StateAddCategory:
		if m.form != nil {
			content = m.form.View()
		}
	case StateConfirmPurge:
		content = m.viewConfirmPurge()
	}

	var status string
	if m.statusLine != "" {
		status = warningStyle.Render(m.statusLine)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Habits", "Categories", "Trash"}
	active := m.state
	if active > StateTrash {
		active = m.previousState
	}
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewCategories() string {
	if len(m.categories) == 0 {
		return docStyle.Render("No categories yet.\nPress 'a' to add one.")
	}

	var b strings.Builder
	for i, c := range m.categories {
		cursor := "  "
		if i == m.catCursor {
			cursor = "> "
		}
		swatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(fmt.Sprintf("#%06X", c.Color))).
			Render("■")
		fmt.Fprintf(&b, "%s%s %s\n", cursor, swatch, c.Name)
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("a add · d delete · J/K reorder"))
	return docStyle.Render(b.String())
}

func (m Model) viewTrash() string {
	if len(m.trashEntries) == 0 {
		return docStyle.Render("Trash is empty.")
	}

	var b strings.Builder
	for i, entry := range m.trashEntries {
		cursor := "  "
		if i == m.trashCursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, entry.label)
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("r restore · x purge forever"))
	return docStyle.Render(b.String())
}

func (m Model) viewConfirmPurge() string {
	var b strings.Builder
	b.WriteString(dangerStyle.Render("Purge forever?"))
	b.WriteString("\n\n")
	b.WriteString(m.purgeTarget.label)
	b.WriteString("\n\n")
	if m.purgeTarget.habitID != 0 {
		b.WriteString(warningStyle.Render("All completion history will be deleted with it."))
	} else {
		b.WriteString(warningStyle.Render("Habits in this category keep its name but lose the color."))
	}
	b.WriteString("\n\n")
	b.WriteString("y confirm · n cancel")
	return docStyle.Render(b.String())
}
