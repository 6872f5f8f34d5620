package reminder

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/habitkeep/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

type memStore struct {
	mu       sync.Mutex
	settings models.NotificationSettings
	saveErr  error
	getErr   error
}

func (s *memStore) GetNotificationSettings() (models.NotificationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return models.NotificationSettings{}, s.getErr
	}
	return s.settings, nil
}

func (s *memStore) SaveNotificationSettings(settings models.NotificationSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.settings = settings
	return nil
}

type recordingPresenter struct {
	ch chan string
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{ch: make(chan string, 16)}
}

func (p *recordingPresenter) RequestPermission() bool { return true }

func (p *recordingPresenter) Present(title, body, tag string) error {
	p.ch <- tag
	return nil
}

func enabledSettings() models.NotificationSettings {
	return models.NotificationSettings{Enabled: true, MorningTime: "08:00", EveningTime: "20:00"}
}

func TestUpcomingSlots(t *testing.T) {
	// 09:00 local: today's morning slot has passed, evening has not.
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	slots, err := UpcomingSlots(enabledSettings(), now, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Today contributes the evening only; the next 6 days contribute both.
	if len(slots) != 13 {
		t.Fatalf("expected 13 slots, got %d", len(slots))
	}

	if slots[0].Tag != "evening-2026-08-28" {
		t.Errorf("first slot should be today's evening, got %s", slots[0].Tag)
	}
	if slots[1].Tag != "morning-2026-08-29" {
		t.Errorf("second slot should be tomorrow's morning, got %s", slots[1].Tag)
	}

	for _, slot := range slots {
		if !slot.At.After(now) {
			t.Errorf("slot %s is not in the future: %v", slot.Tag, slot.At)
		}
	}
}

func TestUpcomingSlotsAllFuture(t *testing.T) {
	// 06:00: both of today's slots are still ahead.
	now := time.Date(2026, 8, 28, 6, 0, 0, 0, time.Local)

	slots, err := UpcomingSlots(enabledSettings(), now, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 14 {
		t.Errorf("expected 14 slots, got %d", len(slots))
	}
}

func TestUpcomingSlotsInvalidSettings(t *testing.T) {
	settings := enabledSettings()
	settings.MorningTime = "25:00"
	if _, err := UpcomingSlots(settings, time.Now(), 7); err == nil {
		t.Error("expected error for invalid settings")
	}
}

func TestScheduleArmsWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)}
	store := &memStore{}
	sched := New(clock, store, newRecordingPresenter())
	defer sched.Cancel()

	if err := sched.Schedule(enabledSettings(), "check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags := sched.ArmedTags()
	if len(tags) != 13 {
		t.Errorf("expected 13 armed timers, got %d", len(tags))
	}

	// Settings are persisted before arming.
	saved, _ := store.GetNotificationSettings()
	if !saved.Enabled {
		t.Error("expected settings persisted on schedule")
	}
}

func TestScheduleIsIdempotent(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)}
	sched := New(clock, &memStore{}, newRecordingPresenter())
	defer sched.Cancel()

	settings := enabledSettings()
	if err := sched.Schedule(settings, "check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := sched.ArmedTags()

	if err := sched.Schedule(settings, "check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := sched.ArmedTags()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-schedule changed armed set:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestScheduleDisabledCancelsAll(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)}
	sched := New(clock, &memStore{}, newRecordingPresenter())

	if err := sched.Schedule(enabledSettings(), "check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sched.ArmedTags()) == 0 {
		t.Fatal("expected armed timers")
	}

	disabled := enabledSettings()
	disabled.Enabled = false
	if err := sched.Schedule(disabled, "check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(sched.ArmedTags()); got != 0 {
		t.Errorf("expected no armed timers, got %d", got)
	}
}

func TestCancelIsSafeWhenIdle(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	sched := New(clock, &memStore{}, newRecordingPresenter())

	sched.Cancel()
	sched.Cancel()

	if got := len(sched.ArmedTags()); got != 0 {
		t.Errorf("expected no armed timers, got %d", got)
	}
}

func TestClearAllResetsStore(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)}
	store := &memStore{}
	sched := New(clock, store, newRecordingPresenter())

	if err := sched.Schedule(enabledSettings(), "check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sched.ClearAll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(sched.ArmedTags()); got != 0 {
		t.Errorf("expected no armed timers, got %d", got)
	}
	saved, _ := store.GetNotificationSettings()
	if saved.Enabled {
		t.Error("expected persisted settings disabled after ClearAll")
	}
}

func TestSchedulePersistFailureIsNonFatal(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)}
	store := &memStore{saveErr: errors.New("disk full")}
	sched := New(clock, store, newRecordingPresenter())
	defer sched.Cancel()

	if err := sched.Schedule(enabledSettings(), "check in"); err != nil {
		t.Fatalf("persist failure should not fail scheduling: %v", err)
	}
	if got := len(sched.ArmedTags()); got != 13 {
		t.Errorf("expected 13 armed timers despite persist failure, got %d", got)
	}
}

func TestRearmReadsStore(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)}
	store := &memStore{settings: enabledSettings()}
	sched := New(clock, store, newRecordingPresenter())
	defer sched.Cancel()

	if err := sched.Rearm("check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(sched.ArmedTags()); got != 13 {
		t.Errorf("expected 13 armed timers, got %d", got)
	}
}

func TestRearmDisabledCancels(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)}
	store := &memStore{settings: enabledSettings()}
	sched := New(clock, store, newRecordingPresenter())

	if err := sched.Rearm("check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	disabled := enabledSettings()
	disabled.Enabled = false
	store.mu.Lock()
	store.settings = disabled
	store.mu.Unlock()

	if err := sched.OnBackgroundTick("check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(sched.ArmedTags()); got != 0 {
		t.Errorf("expected timers canceled after disable, got %d", got)
	}
}

func TestRearmStoreErrorIsSwallowed(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := &memStore{getErr: errors.New("db locked")}
	sched := New(clock, store, newRecordingPresenter())

	if err := sched.OnForegroundResume("check in"); err != nil {
		t.Errorf("store read failure should be swallowed: %v", err)
	}
}

func TestTimerFiresAndPresents(t *testing.T) {
	// Place the clock just before the evening slot so the armed timer's
	// real delay is tiny.
	slotTime := time.Date(2026, 8, 28, 20, 0, 0, 0, time.Local)
	clock := &fakeClock{now: slotTime.Add(-20 * time.Millisecond)}
	presenter := newRecordingPresenter()
	sched := New(clock, &memStore{}, presenter)
	defer sched.Cancel()

	settings := enabledSettings()
	if err := sched.Schedule(settings, "check in"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case tag := <-presenter.ch:
		if tag != "evening-2026-08-28" {
			t.Errorf("got tag %q, want evening-2026-08-28", tag)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}

	// The fired timer is removed from the armed set.
	for _, tag := range sched.ArmedTags() {
		if tag == "evening-2026-08-28" {
			t.Error("fired timer still armed")
		}
	}
}
