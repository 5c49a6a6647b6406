package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomaskoller/arbor/internal/streak"
	"github.com/tomaskoller/arbor/internal/tree"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("70")).
			Padding(1, 3).
			Align(lipgloss.Center)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	doneMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Render("✓")
	pendingMark = mutedStyle.Render("○")
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	completed, total := ctx.Store.TodayProgress()
	rate := tree.CompletionRate(completed, total)
	state := tree.Classify(rate)

	card := lipgloss.JoinVertical(lipgloss.Center,
		state.Glyph(),
		"",
		messageStyle.Render(state.Message()),
		mutedStyle.Render(fmt.Sprintf("%d of %d habits done today (%d%%)", completed, total, int(rate*100))),
		progressBar(rate, 20),
	)
	fmt.Println(cardStyle.Render(card))

	habits := ctx.Store.ActiveHabits()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'arbor add'.")
		return nil
	}

	ledger := ctx.Store.Ledger()
	today := ctx.Store.Now()
	for _, habit := range habits {
		mark := pendingMark
		if ctx.Store.IsDoneToday(habit.ID) {
			mark = doneMark
		}
		line := fmt.Sprintf("%s %s", mark, habit.Name)
		if n, err := streak.Count(habit.ID, ledger, habit.CreatedAt, today); err == nil && n > 0 {
			line += mutedStyle.Render(fmt.Sprintf("  %d day streak", n))
		}
		fmt.Println(line)
	}
	return nil
}

func progressBar(rate float64, width int) string {
	filled := int(rate * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Render(bar)
}
