package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkeep/internal/constants"
)

// NotificationSettings is the single process-wide reminder configuration,
// shared between the CLI context and the watch daemon (last writer wins).
type NotificationSettings struct {
	Enabled     bool   `json:"enabled"`
	MorningTime string `json:"morningTime"` // HH:MM, 24-hour local time
	EveningTime string `json:"eveningTime"` // HH:MM, 24-hour local time
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:     constants.DefaultNotificationsEnabled,
		MorningTime: constants.DefaultMorningTime,
		EveningTime: constants.DefaultEveningTime,
	}
}

func (s NotificationSettings) Validate() error {
	if _, err := time.Parse(constants.TimeFormat, s.MorningTime); err != nil {
		return fmt.Errorf("invalid morning time format (expected HH:MM): %w", err)
	}
	if _, err := time.Parse(constants.TimeFormat, s.EveningTime); err != nil {
		return fmt.Errorf("invalid evening time format (expected HH:MM): %w", err)
	}
	return nil
}
