package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkeep/internal/constants"
)

// Status is the outcome recorded for a habit on a single day.
type Status string

const (
	StatusCompleted     Status = "completed"
	StatusPartial       Status = "partial"
	StatusFailed        Status = "failed"
	StatusNotApplicable Status = "not-applicable"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusCompleted, StatusPartial, StatusFailed, StatusNotApplicable:
		return true
	default:
		return false
	}
}

// ParseStatus parses a user-supplied status string, accepting a few short
// aliases alongside the canonical forms.
func ParseStatus(s string) (Status, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "completed", "complete", "done":
		return StatusCompleted, nil
	case "partial":
		return StatusPartial, nil
	case "failed", "fail":
		return StatusFailed, nil
	case "not-applicable", "na", "n/a":
		return StatusNotApplicable, nil
	default:
		return "", fmt.Errorf("invalid status %q (expected completed, partial, failed, or not-applicable)", s)
	}
}

// HabitStatus records the outcome for one habit on one day.
// At most one record exists per (HabitID, Date) pair; setting a new status
// for an existing date replaces the prior record.
type HabitStatus struct {
	HabitID string `json:"habitId"`
	Date    string `json:"date"` // YYYY-MM-DD format
	Status  Status `json:"status"`
}

func (hs HabitStatus) Validate() error {
	if strings.TrimSpace(hs.HabitID) == "" {
		return fmt.Errorf("status habit id cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, hs.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if !hs.Status.IsValid() {
		return fmt.Errorf("invalid status %q", hs.Status)
	}
	return nil
}
