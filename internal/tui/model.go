package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tomaskoller/arbor/internal/models"
	"github.com/tomaskoller/arbor/internal/store"
	"github.com/tomaskoller/arbor/internal/streak"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateAddHabit
	StateConfirmDelete
)

type HabitFormModel struct {
	Name        string
	Description string
	Remind      string
}

type Item struct {
	Habit  models.Habit
	Done   bool
	Streak int
}

func (i Item) Title() string {
	title := i.Habit.Name
	if !i.Habit.Active {
		return "[DELETED] " + title
	}
	if i.Done {
		return "✓ " + title
	}
	return "○ " + title
}

func (i Item) Description() string {
	if !i.Habit.Active {
		return "can restore with 'r'"
	}
	desc := "not completed today"
	if i.Done {
		desc = "completed today"
	}
	if i.Streak > 0 {
		desc += fmt.Sprintf(" · %d day streak", i.Streak)
	}
	if i.Habit.HasReminder() {
		desc += " · reminds at " + i.Habit.ReminderTime
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

type Model struct {
	store *store.HabitStore
	state SessionState
	keys  KeyMap
	help  help.Model
	list  list.Model

	form      *huh.Form
	habitForm *HabitFormModel

	habitToDeleteID string
	warning         string

	quitting bool
	width    int
	height   int
}

func NewModel(s *store.HabitStore) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	m := Model{
		store: s,
		state: StateHabits,
		keys:  keys,
		help:  help.New(),
		list:  l,
	}
	m.refreshItems()
	return m
}

// refreshItems rebuilds the list from the store, deleted habits last.
func (m *Model) refreshItems() {
	ledger := m.store.Ledger()
	today := m.store.Now()

	var items []list.Item
	for _, includeDeleted := range []bool{false, true} {
		for _, h := range m.store.Habits(true) {
			if h.Active == includeDeleted {
				continue
			}
			n := 0
			if h.Active {
				n, _ = streak.Count(h.ID, ledger, h.CreatedAt, today)
			}
			items = append(items, Item{
				Habit:  h,
				Done:   m.store.IsDoneToday(h.ID),
				Streak: n,
			})
		}
	}
	m.list.SetItems(items)
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Delete, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Toggle, m.keys.Add, m.keys.Delete, m.keys.Restore},
		{m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
