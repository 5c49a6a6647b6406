package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tomaskoller/arbor/internal/reminder"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == StateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = StateHabits
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			habit, err := m.store.AddHabit(m.habitForm.Name, m.habitForm.Description, m.habitForm.Remind)
			if err != nil {
				m.warning = err.Error()
			} else if habit.HasReminder() && habit.NotificationID == nil {
				m.warning = fmt.Sprintf("Reminder for %s saved but not scheduled", habit.ReminderTime)
			}
			m.refreshItems()
			m.state = StateHabits
		case huh.StateAborted:
			m.state = StateHabits
		}
		return m, tea.Batch(cmds...)
	}

	if m.state == StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y":
				if err := m.store.ToggleActive(m.habitToDeleteID); err != nil {
					m.warning = err.Error()
				}
				m.refreshItems()
				m.state = StateHabits
			case "n", "esc", "q":
				m.state = StateHabits
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		headerHeight := 6
		m.list.SetSize(msg.Width-h, msg.Height-v-headerHeight)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		m.warning = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Habit.Active {
				m.store.MarkDone(i.Habit.ID, !i.Done)
				m.refreshItems()
			}

		case key.Matches(msg, m.keys.Add):
			m.habitForm = &HabitFormModel{}
			m.form = newHabitForm(m.habitForm)
			m.state = StateAddHabit
			return m, m.form.Init()

		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Habit.Active {
				m.habitToDeleteID = i.Habit.ID
				m.state = StateConfirmDelete
			}

		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Habit.Active {
				if err := m.store.ToggleActive(i.Habit.ID); err != nil {
					m.warning = err.Error()
				}
				m.refreshItems()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Reminder (HH:MM, blank for none)").
				Value(&fm.Remind).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, _, err := reminder.ParseClock(s); err != nil {
						return fmt.Errorf("time must be HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
