package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomaskoller/arbor/internal/tree"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateAddHabit:
		return docStyle.Render(m.form.View())
	case StateConfirmDelete:
		return lipgloss.Place(m.width, m.height-4,
			lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				dangerStyle.Render("Delete this habit?"),
				"Its history is kept and it can be restored.",
				"",
				"[y] Yes",
				"[n] No",
			),
		)
	}

	var banner string
	if m.warning != "" {
		banner = warningStyle.Render("⚠ " + m.warning)
	}

	content := m.list.View()
	if len(m.list.Items()) == 0 {
		content = "\n  No habits yet.\n  Press 'a' to add one."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		banner,
		docStyle.Render(content),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	completed, total := m.store.TodayProgress()
	rate := tree.CompletionRate(completed, total)
	state := tree.Classify(rate)

	line := fmt.Sprintf("%s  %s  %s",
		state.Glyph(),
		messageStyle.Render(state.Message()),
		mutedStyle.Render(fmt.Sprintf("%d/%d today", completed, total)),
	)
	return headerStyle.Render(line)
}
