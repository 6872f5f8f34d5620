package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitkeep/internal/engine"
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/timeutil"
)

type StatusCmd struct {
	Set   StatusSetCmd   `cmd:"" help:"Record a status for a habit on a day."`
	Today StatusTodayCmd `cmd:"" help:"Show today's overview." default:"1"`
	Log   StatusLogCmd   `cmd:"" help:"Show habit history grid."`
}

type StatusSetCmd struct {
	Habit  string `arg:"" help:"Habit name or id."`
	Status string `arg:"" help:"One of: completed, partial, failed, not-applicable."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *StatusSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Tracker.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return err
	}

	day, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}
	dateStr := timeutil.FormatDate(day)

	updated, err := ctx.Tracker.RecordStatus(habit.ID, dateStr, status)
	if err != nil {
		return err
	}

	style := StyleForStatus(&status)
	fmt.Printf("%s %s on %s (streak %d, best %d)\n",
		style.Render(string(status)), updated.Name, dateStr,
		updated.SuccessCount, updated.BestStreak)

	if !updated.IsActiveOn(day) {
		fmt.Println(mutedStyle.Render("note: this date is outside the habit's scheduled days"))
	}
	return nil
}

type StatusTodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *StatusTodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	overview, err := ctx.Tracker.OverviewForDate(day)
	if err != nil {
		return err
	}

	if len(overview.Rows) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Habits for %s (%s)", timeutil.FormatDate(day), day.Weekday())))
	fmt.Println()

	for _, row := range overview.Rows {
		style := StyleForStatus(row.Status)
		cell := style.Render(fmt.Sprintf("[%s]", row.Display.Symbol))
		fmt.Printf("%s %s", cell, row.Habit.Name)
		if row.Status == nil && row.Habit.IsActiveOn(day) && row.Habit.EmergencyHabitText != "" {
			fmt.Printf(" %s", mutedStyle.Render("(fallback: "+row.Habit.EmergencyHabitText+")"))
		}
		fmt.Println()
	}

	fmt.Printf("\nCompleted: %d/%d\n", overview.CompletedCount, overview.TotalCount)
	return nil
}

type StatusLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for a specific habit only." default:""`
}

func (c *StatusLogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}

	if c.Habit != "" {
		habit, err := ctx.Tracker.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{habit}
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	endDay := ctx.Clock.Now()
	startDay := timeutil.AddDays(endDay, -(c.Days - 1))

	fmt.Printf("Habit log (last %d days):\n\n", c.Days)

	const nameWidth = 20
	fmt.Print(strings.Repeat(" ", nameWidth))
	for i := 0; i < c.Days; i++ {
		day := timeutil.AddDays(startDay, i)
		fmt.Printf(" %5s", day.Format("01/02"))
	}
	fmt.Println()

	fmt.Print(strings.Repeat("-", nameWidth))
	for i := 0; i < c.Days; i++ {
		fmt.Print("------")
	}
	fmt.Println()

	for _, habit := range habits {
		name := habit.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		} else {
			name = name + strings.Repeat(" ", nameWidth-len(name))
		}
		fmt.Print(name)

		records, err := ctx.Store.GetStatusesForHabit(habit.ID)
		if err != nil {
			return err
		}

		for i := 0; i < c.Days; i++ {
			day := timeutil.AddDays(startDay, i)
			status := engine.StatusForDate(habit.ID, timeutil.FormatDate(day), records)
			display := engine.DisplayForStatus(status, habit, day)
			cell := StyleForStatus(status).Render(display.Symbol)
			fmt.Printf("  %s   ", cell)
		}
		fmt.Println()
	}

	fmt.Println("\nx completed   ~ partial   ! failed   - not applicable   . not set")
	return nil
}
