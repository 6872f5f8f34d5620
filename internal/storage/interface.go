package storage

import "github.com/julianstephens/habitkeep/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeArchived bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	// DeleteHabit hard-deletes the habit and every status record that
	// references it.
	DeleteHabit(id string) error

	// Statuses. SetStatus replaces any existing record for the same
	// (habitId, date) pair; the collection never holds two records for one
	// pair.
	SetStatus(models.HabitStatus) error
	GetStatus(habitID, date string) (models.HabitStatus, bool, error)
	GetStatusesForDay(date string) ([]models.HabitStatus, error)
	GetStatusesForHabit(habitID string) ([]models.HabitStatus, error)

	// Notification settings
	GetNotificationSettings() (models.NotificationSettings, error)
	SaveNotificationSettings(models.NotificationSettings) error

	// Utils
	GetConfigPath() string
}
