package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitkeep/internal/logger"
	"github.com/julianstephens/habitkeep/internal/models"
)

// Store is the on-disk layout of the JSON store. Every save rewrites the
// whole document; there are no partial updates or transactions.
type Store struct {
	Version       int                           `json:"version"`
	Habits        map[string]models.Habit       `json:"habits"`
	Statuses      map[string]models.HabitStatus `json:"statuses"` // keyed by habitId|date
	Notifications models.NotificationSettings   `json:"notifications"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func statusKey(habitID, date string) string {
	return habitID + "|" + date
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:       1,
		Habits:        make(map[string]models.Habit),
		Statuses:      make(map[string]models.HabitStatus),
		Notifications: models.DefaultNotificationSettings(),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitkeep init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// A broken store must not make the app unusable. Fall back to an
		// empty in-memory store; the next mutation rewrites the file.
		logger.Warn("storage file is corrupt, starting with defaults", "path", s.path, "error", err)
		s.store = &Store{
			Version:       1,
			Notifications: models.DefaultNotificationSettings(),
		}
	}

	// Ensure maps are initialized
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Statuses == nil {
		s.store.Statuses = make(map[string]models.HabitStatus)
	}

	// Backfill best streaks for habits persisted before the field existed
	for id, habit := range s.store.Habits {
		if habit.BestStreak < habit.SuccessCount {
			habit.BestStreak = habit.SuccessCount
			s.store.Habits[id] = habit
		}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}

	return habit, nil
}

func (s *JSONStore) GetHabitByName(name string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	for _, habit := range s.store.Habits {
		if habit.Name == name {
			return habit, nil
		}
	}

	return models.Habit{}, fmt.Errorf("habit not found: %s", name)
}

func (s *JSONStore) GetAllHabits(includeArchived bool) ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		if !includeArchived && habit.IsArchived() {
			continue
		}
		habits = append(habits, habit)
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].Order != habits[j].Order {
			return habits[i].Order < habits[j].Order
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[habit.ID]; !ok {
		return fmt.Errorf("habit not found: %s", habit.ID)
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) ArchiveHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return fmt.Errorf("habit not found: %s", id)
	}
	if habit.IsArchived() {
		return fmt.Errorf("habit already archived: %s", habit.Name)
	}

	now := time.Now()
	habit.ArchivedAt = &now
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) UnarchiveHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return fmt.Errorf("habit not found: %s", id)
	}
	if !habit.IsArchived() {
		return fmt.Errorf("habit is not archived: %s", habit.Name)
	}

	habit.ArchivedAt = nil
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[id]; !ok {
		return fmt.Errorf("habit not found: %s", id)
	}

	delete(s.store.Habits, id)

	// Cascade: remove every status record for this habit
	prefix := id + "|"
	for key := range s.store.Statuses {
		if strings.HasPrefix(key, prefix) {
			delete(s.store.Statuses, key)
		}
	}

	return s.save()
}

func (s *JSONStore) SetStatus(status models.HabitStatus) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Keyed by (habitId, date): a rewrite replaces the prior record
	s.store.Statuses[statusKey(status.HabitID, status.Date)] = status
	return s.save()
}

func (s *JSONStore) GetStatus(habitID, date string) (models.HabitStatus, bool, error) {
	if s.store == nil {
		return models.HabitStatus{}, false, fmt.Errorf("storage not loaded")
	}

	status, ok := s.store.Statuses[statusKey(habitID, date)]
	return status, ok, nil
}

func (s *JSONStore) GetStatusesForDay(date string) ([]models.HabitStatus, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var statuses []models.HabitStatus
	for _, status := range s.store.Statuses {
		if status.Date == date {
			statuses = append(statuses, status)
		}
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].HabitID < statuses[j].HabitID
	})

	return statuses, nil
}

func (s *JSONStore) GetStatusesForHabit(habitID string) ([]models.HabitStatus, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var statuses []models.HabitStatus
	for _, status := range s.store.Statuses {
		if status.HabitID == habitID {
			statuses = append(statuses, status)
		}
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Date < statuses[j].Date
	})

	return statuses, nil
}

func (s *JSONStore) GetNotificationSettings() (models.NotificationSettings, error) {
	if s.store == nil {
		return models.NotificationSettings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Notifications, nil
}

func (s *JSONStore) SaveNotificationSettings(settings models.NotificationSettings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Notifications = settings
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
