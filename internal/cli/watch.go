package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/logger"
	"github.com/julianstephens/habitkeep/internal/notifier"
	"github.com/julianstephens/habitkeep/internal/reminder"
	"github.com/julianstephens/habitkeep/internal/storage/mirror"
)

// WatchCmd runs the long-lived reminder watcher. It copies the primary
// store's notification settings into the SQLite mirror, arms the reminder
// window, and re-arms it on a periodic tick (timers do not survive sleep or
// clock jumps, so the window is rebuilt rather than trusted).
type WatchCmd struct {
	Interval time.Duration `help:"Re-arm interval." default:"1h"`
}

func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	mirrorPath := filepath.Join(filepath.Dir(ctx.Store.GetConfigPath()), constants.MirrorFileName)
	m, err := mirror.Open(mirrorPath)
	if err != nil {
		return err
	}
	defer m.Close()

	// Sync primary -> mirror so the watcher works from a fresh copy.
	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return err
	}
	if err := m.SaveNotificationSettings(settings); err != nil {
		return err
	}

	text, err := reminderText(ctx)
	if err != nil {
		return err
	}

	sched := reminder.New(ctx.Clock, m, notifier.New())
	if err := sched.Schedule(settings, text); err != nil {
		return err
	}

	if !settings.Enabled {
		fmt.Println("Reminders are disabled; watching for settings changes.")
	} else {
		fmt.Printf("Watching: %d reminders armed (morning %s, evening %s).\n",
			len(sched.ArmedTags()), settings.MorningTime, settings.EveningTime)
	}

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case <-ticker.C:
			if err := c.resync(ctx, m, sched); err != nil {
				logger.Warn("periodic re-arm failed", "error", err)
			}
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				// Treat SIGHUP as a resume/refresh request.
				if err := c.resync(ctx, m, sched); err != nil {
					logger.Warn("refresh re-arm failed", "error", err)
				}
				continue
			}
			sched.Cancel()
			fmt.Println("Watcher stopped.")
			return nil
		}
	}
}

// resync re-reads the primary store, refreshes the mirror, and re-arms.
func (c *WatchCmd) resync(ctx *Context, m *mirror.Mirror, sched *reminder.Scheduler) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return err
	}
	if err := m.SaveNotificationSettings(settings); err != nil {
		return err
	}

	text, err := reminderText(ctx)
	if err != nil {
		return err
	}
	return sched.OnBackgroundTick(text)
}

// reminderText builds the notification body from the current habit count.
func reminderText(ctx *Context) (string, error) {
	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return "", err
	}
	if len(habits) == 0 {
		return constants.DefaultReminderText, nil
	}
	if len(habits) == 1 {
		return fmt.Sprintf("Time to check in on %s", habits[0].Name), nil
	}
	return fmt.Sprintf("Time to check in on your %d habits", len(habits)), nil
}
