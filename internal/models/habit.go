package models

import (
	"fmt"
	"strings"
	"time"
)

// Habit represents a recurring practice tracked on specific weekdays.
type Habit struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	ValidDays          []time.Weekday `json:"validDays"` // 0-6 (Sunday-Saturday)
	CreatedAt          time.Time      `json:"createdAt"`
	SuccessCount       int            `json:"successCount"`
	BestStreak         int            `json:"bestStreak"`
	EmergencyHabitText string         `json:"emergencyHabitText,omitempty"` // easier fallback version, display only
	Order              int            `json:"order"`
	ArchivedAt         *time.Time     `json:"archivedAt,omitempty"`
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if len(h.ValidDays) == 0 {
		return fmt.Errorf("habit must have at least one valid day")
	}
	seen := make(map[time.Weekday]bool)
	for _, wd := range h.ValidDays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid weekday %d (expected 0-6)", wd)
		}
		if seen[wd] {
			return fmt.Errorf("duplicate weekday %s", wd)
		}
		seen[wd] = true
	}
	if h.SuccessCount < 0 {
		return fmt.Errorf("success count cannot be negative")
	}
	if h.BestStreak < h.SuccessCount {
		return fmt.Errorf("best streak cannot be lower than the current streak")
	}
	return nil
}

// IsActiveOn reports whether the habit is scheduled on the given date's weekday.
func (h Habit) IsActiveOn(date time.Time) bool {
	for _, wd := range h.ValidDays {
		if date.Weekday() == wd {
			return true
		}
	}
	return false
}

func (h Habit) IsArchived() bool {
	return h.ArchivedAt != nil
}
