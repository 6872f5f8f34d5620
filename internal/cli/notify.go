package cli

import (
	"fmt"

	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/notifier"
	"github.com/julianstephens/habitkeep/internal/reminder"
)

type NotifyCmd struct {
	Show    NotifyShowCmd    `cmd:"" help:"Show current reminder settings." default:"1"`
	Set     NotifySetCmd     `cmd:"" help:"Set reminder times."`
	Enable  NotifyEnableCmd  `cmd:"" help:"Enable reminders."`
	Disable NotifyDisableCmd `cmd:"" help:"Disable reminders."`
	Reset   NotifyResetCmd   `cmd:"" help:"Reset reminder settings to defaults."`
	Test    NotifyTestCmd    `cmd:"" help:"Send a test notification through the tray helper."`
}

type NotifyShowCmd struct{}

func (c *NotifyShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return err
	}

	state := "disabled"
	if settings.Enabled {
		state = "enabled"
	}
	fmt.Printf("Reminders: %s\n", state)
	fmt.Printf("Morning:   %s\n", settings.MorningTime)
	fmt.Printf("Evening:   %s\n", settings.EveningTime)
	return nil
}

type NotifySetCmd struct {
	Morning string `help:"Morning reminder time (HH:MM, 24-hour)." default:""`
	Evening string `help:"Evening reminder time (HH:MM, 24-hour)." default:""`
}

func (c *NotifySetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return err
	}

	if c.Morning != "" {
		settings.MorningTime = c.Morning
	}
	if c.Evening != "" {
		settings.EveningTime = c.Evening
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.SaveNotificationSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Reminder times set: morning %s, evening %s\n", settings.MorningTime, settings.EveningTime)
	if settings.Enabled {
		fmt.Println("Run 'habitkeep watch' (or let the running watcher tick) to apply the new times.")
	}
	return nil
}

type NotifyEnableCmd struct{}

func (c *NotifyEnableCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Permission check up front: enabling without a reachable tray would
	// silently arm reminders no one can see.
	if !notifier.New().RequestPermission() {
		return fmt.Errorf("habitkeep-tray is not running; start it before enabling reminders")
	}

	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return err
	}
	settings.Enabled = true

	if err := ctx.Store.SaveNotificationSettings(settings); err != nil {
		return err
	}

	fmt.Println("Reminders enabled. Run 'habitkeep watch' to keep them armed.")
	return nil
}

type NotifyDisableCmd struct{}

func (c *NotifyDisableCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return err
	}
	settings.Enabled = false

	if err := ctx.Store.SaveNotificationSettings(settings); err != nil {
		return err
	}

	fmt.Println("Reminders disabled.")
	return nil
}

type NotifyResetCmd struct{}

func (c *NotifyResetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sched := reminder.New(ctx.Clock, ctx.Store, notifier.New())
	if err := sched.ClearAll(); err != nil {
		return err
	}

	fmt.Println("Reminder settings reset to defaults (disabled).")
	return nil
}

type NotifyTestCmd struct {
	Text string `help:"Notification text." default:""`
}

func (c *NotifyTestCmd) Run(ctx *Context) error {
	text := c.Text
	if text == "" {
		text = constants.DefaultReminderText
	}

	if err := notifier.New().Present("Test reminder", text, "test"); err != nil {
		return err
	}

	fmt.Println("Notification sent.")
	return nil
}
