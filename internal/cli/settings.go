package cli

import (
	"fmt"

	apperrors "github.com/tomaskoller/arbor/internal/errors"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Notifications *bool `help:"Enable or disable reminder notifications."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if c.Notifications != nil {
		err := ctx.Store.SetNotificationsEnabled(*c.Notifications)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrPermissionDenied) {
				fmt.Println("Notification permission was denied; notifications stay off.")
				return nil
			}
			return err
		}
		if *c.Notifications {
			fmt.Println("Notifications enabled.")
			fmt.Println("(Existing reminders are not rescheduled; edit a habit to re-enable its reminder)")
		} else {
			fmt.Println("Notifications disabled and all reminders cancelled.")
		}
		return nil
	}

	settings := ctx.Store.Settings()
	fmt.Println("Current Settings:")
	fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
	return nil
}
