// Package reminder arms a rolling window of one-shot morning and evening
// reminders. Timers are in-memory only: a process restart loses them, so
// every plausible wake-up path (startup, resume, periodic tick, settings
// change) funnels into a full re-arm.
package reminder

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/logger"
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/timeutil"
)

// Presenter delivers a reminder to the user.
type Presenter interface {
	// RequestPermission reports whether reminders can currently be delivered.
	// It never fails; an unavailable presenter simply reports false.
	RequestPermission() bool
	Present(title, body, tag string) error
}

// SettingsStore persists notification settings across restarts.
type SettingsStore interface {
	GetNotificationSettings() (models.NotificationSettings, error)
	SaveNotificationSettings(models.NotificationSettings) error
}

// Slot is one planned reminder instant.
type Slot struct {
	Tag   string // unique per slot, e.g. "morning-2026-08-28"
	Title string
	At    time.Time
}

// UpcomingSlots plans the reminder instants for the next `days` calendar days
// starting at now's date. Instants at or before now are skipped, so on any
// given day only the still-future slots are produced.
func UpcomingSlots(settings models.NotificationSettings, now time.Time, days int) ([]Slot, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	var slots []Slot
	for i := 0; i < days; i++ {
		day := timeutil.AddDays(now, i)
		dateStr := timeutil.FormatDate(day)

		morning, err := timeutil.CombineDateAndTime(day, settings.MorningTime)
		if err != nil {
			return nil, err
		}
		if morning.After(now) {
			slots = append(slots, Slot{
				Tag:   "morning-" + dateStr,
				Title: constants.MorningTitle,
				At:    morning,
			})
		}

		evening, err := timeutil.CombineDateAndTime(day, settings.EveningTime)
		if err != nil {
			return nil, err
		}
		if evening.After(now) {
			slots = append(slots, Slot{
				Tag:   "evening-" + dateStr,
				Title: constants.EveningTitle,
				At:    evening,
			})
		}
	}

	return slots, nil
}

// Scheduler owns the set of armed reminder timers.
type Scheduler struct {
	mu         sync.Mutex
	clock      timeutil.Clock
	store      SettingsStore
	presenter  Presenter
	timers     map[string]*time.Timer
	windowDays int
}

func New(clock timeutil.Clock, store SettingsStore, presenter Presenter) *Scheduler {
	return &Scheduler{
		clock:      clock,
		store:      store,
		presenter:  presenter,
		timers:     make(map[string]*time.Timer),
		windowDays: constants.ReminderWindowDays,
	}
}

// Schedule cancels everything currently armed and arms the full upcoming
// window for the given settings. The settings are persisted before arming so
// a crash mid-arm still leaves the next re-arm with the right configuration.
// Calling Schedule twice with the same inputs yields the same armed set.
func (s *Scheduler) Schedule(settings models.NotificationSettings, reminderText string) error {
	if !settings.Enabled {
		s.Cancel()
		return nil
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid notification settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()

	if err := s.store.SaveNotificationSettings(settings); err != nil {
		// Arming still proceeds: losing persistence degrades the next
		// restart, not this session.
		logger.Warn("failed to persist notification settings", "error", err)
	}

	now := s.clock.Now()
	slots, err := UpcomingSlots(settings, now, s.windowDays)
	if err != nil {
		return err
	}

	for _, slot := range slots {
		slot := slot
		delay := slot.At.Sub(now)
		s.timers[slot.Tag] = time.AfterFunc(delay, func() {
			s.fire(slot, reminderText)
		})
	}

	logger.Debug("reminders scheduled", "count", len(slots), "window_days", s.windowDays)
	return nil
}

func (s *Scheduler) fire(slot Slot, body string) {
	s.mu.Lock()
	delete(s.timers, slot.Tag)
	s.mu.Unlock()

	if err := s.presenter.Present(slot.Title, body, slot.Tag); err != nil {
		logger.Warn("failed to present reminder", "tag", slot.Tag, "error", err)
	}
}

// Cancel stops and discards every armed timer. Safe to call when nothing is
// armed.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Scheduler) cancelLocked() {
	for tag, timer := range s.timers {
		timer.Stop()
		delete(s.timers, tag)
	}
}

// ClearAll cancels every armed timer and resets persisted settings to the
// disabled defaults.
func (s *Scheduler) ClearAll() error {
	s.Cancel()

	settings := models.DefaultNotificationSettings()
	settings.Enabled = false
	if err := s.store.SaveNotificationSettings(settings); err != nil {
		return fmt.Errorf("failed to reset notification settings: %w", err)
	}
	return nil
}

// Rearm re-reads the persisted settings and rebuilds the timer window. A
// store read failure is logged and swallowed: a wake-up trigger failing to
// re-arm must not take down the caller, the next trigger retries.
func (s *Scheduler) Rearm(reminderText string) error {
	settings, err := s.store.GetNotificationSettings()
	if err != nil {
		logger.Warn("failed to read notification settings for re-arm", "error", err)
		return nil
	}
	if !settings.Enabled {
		s.Cancel()
		return nil
	}
	return s.Schedule(settings, reminderText)
}

// OnForegroundResume re-arms the window after the process regains attention.
func (s *Scheduler) OnForegroundResume(reminderText string) error {
	return s.Rearm(reminderText)
}

// OnBackgroundTick re-arms the window on a periodic background pass.
func (s *Scheduler) OnBackgroundTick(reminderText string) error {
	return s.Rearm(reminderText)
}

// ArmedTags returns the tags of all currently armed timers, sorted.
func (s *Scheduler) ArmedTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make([]string, 0, len(s.timers))
	for tag := range s.timers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
