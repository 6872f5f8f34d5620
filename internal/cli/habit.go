package cli

import (
	"fmt"
	"strings"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit (hidden from the day view, history kept)."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Unarchive a habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit and all its history."`
	Reorder   HabitReorderCmd   `cmd:"" help:"Reorder habits in the day view."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Days      string `help:"Comma-separated weekdays the habit applies to (e.g. mon,wed,fri or 'daily')." default:"daily"`
	Emergency string `help:"Easier fallback version shown alongside the habit." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	days, err := ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	habit, err := ctx.Tracker.CreateHabit(c.Name, days, c.Emergency)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Name, FormatWeekdays(habit.ValidDays))
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.Archived)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		marker := ""
		if habit.IsArchived() {
			marker = mutedStyle.Render(" [ARCHIVED]")
		}
		streak := fmt.Sprintf("streak %d, best %d", habit.SuccessCount, habit.BestStreak)
		fmt.Printf("%s (%s) %s%s\n", habit.Name, FormatWeekdays(habit.ValidDays), mutedStyle.Render(streak), marker)
		if habit.EmergencyHabitText != "" {
			fmt.Printf("  fallback: %s\n", habit.EmergencyHabitText)
		}
	}

	return nil
}

type HabitEditCmd struct {
	Habit     string  `arg:"" help:"Habit name or id."`
	Name      string  `help:"New habit name." default:""`
	Days      string  `help:"New comma-separated weekdays." default:""`
	Emergency *string `help:"New fallback text (pass an empty string to clear)."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Tracker.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	validDays := habit.ValidDays
	if c.Days != "" {
		validDays, err = ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
	}

	updated, err := ctx.Tracker.EditHabit(habit.ID, c.Name, validDays, c.Emergency)
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s (%s)\n", updated.Name, FormatWeekdays(updated.ValidDays))
	return nil
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Tracker.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Tracker.Archive(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type HabitUnarchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitUnarchiveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Tracker.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Tracker.Unarchive(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Unarchived habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Force bool   `help:"Skip confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Tracker.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete habit %q and all its history? [y/N] ", habit.Name)
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Tracker.Delete(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitReorderCmd struct {
	Habits []string `arg:"" help:"All habit names or ids in the desired order."`
}

func (c *HabitReorderCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ids := make([]string, 0, len(c.Habits))
	for _, ref := range c.Habits {
		habit, err := ctx.Tracker.ResolveHabit(ref)
		if err != nil {
			return err
		}
		ids = append(ids, habit.ID)
	}

	if err := ctx.Tracker.Reorder(ids); err != nil {
		return err
	}

	fmt.Println("Reordered habits.")
	return nil
}
