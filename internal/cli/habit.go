package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tomaskoller/arbor/internal/dates"
	apperrors "github.com/tomaskoller/arbor/internal/errors"
	"github.com/tomaskoller/arbor/internal/streak"
)

type AddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name. Omit to be prompted."`
	Description string `help:"Optional description." default:""`
	Remind      string `help:"Daily reminder time (HH:MM)." default:""`
}

func (c *AddCmd) Run(ctx *Context) error {
	if strings.TrimSpace(c.Name) == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Habit Name").
					Value(&c.Name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("habit name cannot be empty")
						}
						return nil
					}),
				huh.NewInput().
					Title("Description").
					Value(&c.Description),
				huh.NewInput().
					Title("Reminder (HH:MM, blank for none)").
					Value(&c.Remind),
			),
		).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
	}

	habit, err := ctx.Store.AddHabit(c.Name, c.Description, c.Remind)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", habit.Name)
	if habit.HasReminder() {
		if habit.NotificationID != nil {
			fmt.Printf("Daily reminder set for %s\n", habit.ReminderTime)
		} else {
			fmt.Printf("Reminder for %s saved but not scheduled\n", habit.ReminderTime)
		}
	}
	return nil
}

type EditCmd struct {
	Habit       string  `arg:"" help:"Habit name or id."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Remind      *string `help:"New reminder time (HH:MM), empty string clears it."`
}

func (c *EditCmd) Run(ctx *Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	name := habit.Name
	if c.Name != nil {
		name = *c.Name
	}
	description := habit.Description
	if c.Description != nil {
		description = *c.Description
	}
	remind := habit.ReminderTime
	if c.Remind != nil {
		remind = *c.Remind
	}

	if err := ctx.Store.UpdateHabit(habit.ID, name, description, remind); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", name)
	return nil
}

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Undo  bool   `help:"Clear the completion instead of recording it."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = dates.Key(ctx.Store.Now())
	} else if _, err := dates.ParseKey(day); err != nil {
		return err
	}

	ctx.Store.SetCompletion(habit.ID, day, !c.Undo)

	if c.Undo {
		fmt.Printf("Unmarked habit %q for %s\n", habit.Name, day)
	} else {
		fmt.Printf("Marked habit %q done for %s\n", habit.Name, day)
	}
	return nil
}

type ListCmd struct {
	All bool `help:"Include soft-deleted habits."`
}

func (c *ListCmd) Run(ctx *Context) error {
	habits := ctx.Store.Habits(c.All)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	ledger := ctx.Store.Ledger()
	today := ctx.Store.Now()

	for _, habit := range habits {
		status := "[ ]"
		if ctx.Store.IsDoneToday(habit.ID) {
			status = "[x]"
		}
		if !habit.Active {
			status = "[-]"
		}

		line := fmt.Sprintf("%s %s", status, habit.Name)
		if habit.Active {
			if n, err := streak.Count(habit.ID, ledger, habit.CreatedAt, today); err == nil && n > 0 {
				line += fmt.Sprintf("  (%d day streak)", n)
			}
		} else {
			line += "  [DELETED]"
		}
		if habit.HasReminder() {
			line += fmt.Sprintf("  @%s", habit.ReminderTime)
		}
		fmt.Println(line)
	}
	return nil
}

type DeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id to delete."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	if !habit.Active {
		return apperrors.Validationf("habit %q is already deleted", habit.Name)
	}

	if err := ctx.Store.ToggleActive(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	fmt.Println("(This is a soft delete. Use 'arbor restore' to undo)")
	return nil
}

type RestoreCmd struct {
	Habit string `arg:"" help:"Habit name or id to restore."`
}

func (c *RestoreCmd) Run(ctx *Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	if habit.Active {
		return apperrors.Validationf("habit %q is not deleted", habit.Name)
	}

	if err := ctx.Store.ToggleActive(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", habit.Name)
	if habit.HasReminder() {
		fmt.Println("(Reminder is not rescheduled automatically; edit the habit to re-enable it)")
	}
	return nil
}
