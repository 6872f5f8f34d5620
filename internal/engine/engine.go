// Package engine holds the pure streak/status state machine. Inputs are
// assumed validated at the boundary; an unknown status reaching the engine is
// a programming error and panics.
package engine

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkeep/internal/models"
)

// StreakState is the pair of counters a status transition mutates.
type StreakState struct {
	SuccessCount int
	BestStreak   int
}

// Display is the presentation mapping for a day cell.
type Display struct {
	Symbol string
	Label  string
}

// ApplyStatusTransition computes the streak state after recording newStatus
// for a date that previously held oldStatus (nil when unset).
//
// The transition is undo-then-apply: a prior completed entry's contribution
// is removed first (floored at zero), then the new status takes effect. A
// failure resets the streak unconditionally; partial and not-applicable days
// leave the counter untouched. The best streak only ever ratchets upward.
func ApplyStatusTransition(state StreakState, newStatus models.Status, oldStatus *models.Status) StreakState {
	if !newStatus.IsValid() {
		panic(fmt.Sprintf("engine: invalid status %q", newStatus))
	}
	if oldStatus != nil && !oldStatus.IsValid() {
		panic(fmt.Sprintf("engine: invalid prior status %q", *oldStatus))
	}

	count := state.SuccessCount

	// Remove the old status effect
	if oldStatus != nil && *oldStatus == models.StatusCompleted {
		count--
		if count < 0 {
			count = 0
		}
	}

	// Apply the new status effect
	switch newStatus {
	case models.StatusCompleted:
		count++
	case models.StatusFailed:
		count = 0
	case models.StatusPartial, models.StatusNotApplicable:
		// no effect on the counter
	}

	best := state.BestStreak
	if count > best {
		best = count
	}

	return StreakState{SuccessCount: count, BestStreak: best}
}

// StatusForDate returns the status recorded for (habitID, date), or nil if
// no record exists.
func StatusForDate(habitID, date string, records []models.HabitStatus) *models.Status {
	for _, r := range records {
		if r.HabitID == habitID && r.Date == date {
			s := r.Status
			return &s
		}
	}
	return nil
}

// IsActiveOnDate reports whether the habit is scheduled on the given date.
func IsActiveOnDate(habit models.Habit, date time.Time) bool {
	return habit.IsActiveOn(date)
}

// DisplayForStatus maps a stored status to its display cell. Schedule
// validity is checked first: a date outside the habit's valid days always
// renders as not applicable, regardless of any stored status.
func DisplayForStatus(status *models.Status, habit models.Habit, date time.Time) Display {
	if !IsActiveOnDate(habit, date) {
		return Display{Symbol: "-", Label: "Not applicable"}
	}

	if status == nil {
		return Display{Symbol: ".", Label: "Not set"}
	}

	switch *status {
	case models.StatusCompleted:
		return Display{Symbol: "x", Label: "Completed"}
	case models.StatusPartial:
		return Display{Symbol: "~", Label: "Partial"}
	case models.StatusFailed:
		return Display{Symbol: "!", Label: "Failed"}
	case models.StatusNotApplicable:
		return Display{Symbol: "-", Label: "Not applicable"}
	default:
		panic(fmt.Sprintf("engine: invalid status %q", *status))
	}
}
