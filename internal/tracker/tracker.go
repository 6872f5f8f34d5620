// Package tracker wires the streak engine to the storage layer. It owns the
// read-modify-write cycle for habits and daily statuses; display concerns
// stay in the CLI layer.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkeep/internal/engine"
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/storage"
	"github.com/julianstephens/habitkeep/internal/timeutil"
)

type Tracker struct {
	store storage.Provider
	clock timeutil.Clock
}

func New(store storage.Provider, clock timeutil.Clock) *Tracker {
	return &Tracker{store: store, clock: clock}
}

// CreateHabit validates and stores a new habit, appending it to the end of
// the display order.
func (t *Tracker) CreateHabit(name string, validDays []time.Weekday, emergencyText string) (models.Habit, error) {
	habit := models.Habit{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(name),
		ValidDays:          validDays,
		CreatedAt:          t.clock.Now(),
		EmergencyHabitText: strings.TrimSpace(emergencyText),
	}

	if err := habit.Validate(); err != nil {
		return models.Habit{}, err
	}

	if existing, err := t.store.GetHabitByName(habit.Name); err == nil {
		return models.Habit{}, fmt.Errorf("a habit named %q already exists (id %s)", existing.Name, existing.ID)
	}

	habits, err := t.store.GetAllHabits(true)
	if err != nil {
		return models.Habit{}, err
	}
	maxOrder := -1
	for _, h := range habits {
		if h.Order > maxOrder {
			maxOrder = h.Order
		}
	}
	habit.Order = maxOrder + 1

	if err := t.store.AddHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// EditHabit updates the mutable fields of a habit. Empty name or nil
// validDays leave the existing value in place.
func (t *Tracker) EditHabit(id, name string, validDays []time.Weekday, emergencyText *string) (models.Habit, error) {
	habit, err := t.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}

	if name = strings.TrimSpace(name); name != "" && name != habit.Name {
		if existing, err := t.store.GetHabitByName(name); err == nil && existing.ID != habit.ID {
			return models.Habit{}, fmt.Errorf("a habit named %q already exists (id %s)", existing.Name, existing.ID)
		}
		habit.Name = name
	}
	if validDays != nil {
		habit.ValidDays = validDays
	}
	if emergencyText != nil {
		habit.EmergencyHabitText = strings.TrimSpace(*emergencyText)
	}

	if err := habit.Validate(); err != nil {
		return models.Habit{}, err
	}
	if err := t.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// RecordStatus stores a status for (habitID, date) and updates the habit's
// streak counters through the transition engine. Recording outside the
// habit's valid days is permitted; the display layer gates what shows.
func (t *Tracker) RecordStatus(habitID, date string, status models.Status) (models.Habit, error) {
	habit, err := t.store.GetHabit(habitID)
	if err != nil {
		return models.Habit{}, err
	}

	record := models.HabitStatus{HabitID: habitID, Date: date, Status: status}
	if err := record.Validate(); err != nil {
		return models.Habit{}, err
	}

	var oldStatus *models.Status
	if prior, ok, err := t.store.GetStatus(habitID, date); err != nil {
		return models.Habit{}, err
	} else if ok {
		s := prior.Status
		oldStatus = &s
	}

	state := engine.ApplyStatusTransition(
		engine.StreakState{SuccessCount: habit.SuccessCount, BestStreak: habit.BestStreak},
		status, oldStatus,
	)
	habit.SuccessCount = state.SuccessCount
	habit.BestStreak = state.BestStreak

	if err := t.store.SetStatus(record); err != nil {
		return models.Habit{}, err
	}
	if err := t.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// OverviewRow is one habit's state for a single day.
type OverviewRow struct {
	Habit   models.Habit
	Status  *models.Status
	Display engine.Display
}

// Overview collects every active habit's status for the given date, plus the
// day's completion tally.
type Overview struct {
	Date           time.Time
	Rows           []OverviewRow
	CompletedCount int
	TotalCount     int
}

// OverviewForDate builds the day view over all non-archived habits.
func (t *Tracker) OverviewForDate(date time.Time) (Overview, error) {
	habits, err := t.store.GetAllHabits(false)
	if err != nil {
		return Overview{}, err
	}

	dateStr := timeutil.FormatDate(date)
	records, err := t.store.GetStatusesForDay(dateStr)
	if err != nil {
		return Overview{}, err
	}

	ov := Overview{Date: date, TotalCount: len(habits)}
	for _, habit := range habits {
		status := engine.StatusForDate(habit.ID, dateStr, records)
		if status != nil && *status == models.StatusCompleted {
			ov.CompletedCount++
		}
		ov.Rows = append(ov.Rows, OverviewRow{
			Habit:   habit,
			Status:  status,
			Display: engine.DisplayForStatus(status, habit, date),
		})
	}
	return ov, nil
}

// HistoryForHabit returns all recorded statuses for a habit, oldest first.
func (t *Tracker) HistoryForHabit(habitID string) (models.Habit, []models.HabitStatus, error) {
	habit, err := t.store.GetHabit(habitID)
	if err != nil {
		return models.Habit{}, nil, err
	}
	records, err := t.store.GetStatusesForHabit(habitID)
	if err != nil {
		return models.Habit{}, nil, err
	}
	return habit, records, nil
}

// Reorder assigns contiguous order values following the given id sequence.
// Every non-archived habit must appear exactly once.
func (t *Tracker) Reorder(ids []string) error {
	habits, err := t.store.GetAllHabits(false)
	if err != nil {
		return err
	}
	if len(ids) != len(habits) {
		return fmt.Errorf("reorder requires all %d habit ids, got %d", len(habits), len(ids))
	}

	byID := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		habit, ok := byID[id]
		if !ok {
			return fmt.Errorf("habit not found: %s", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate habit id: %s", id)
		}
		seen[id] = true

		habit.Order = i
		if err := t.store.UpdateHabit(habit); err != nil {
			return err
		}
	}
	return nil
}

// ResolveHabit looks a habit up by id first, then by name.
func (t *Tracker) ResolveHabit(ref string) (models.Habit, error) {
	if habit, err := t.store.GetHabit(ref); err == nil {
		return habit, nil
	}
	return t.store.GetHabitByName(ref)
}

func (t *Tracker) Archive(id string) error   { return t.store.ArchiveHabit(id) }
func (t *Tracker) Unarchive(id string) error { return t.store.UnarchiveHabit(id) }
func (t *Tracker) Delete(id string) error    { return t.store.DeleteHabit(id) }
