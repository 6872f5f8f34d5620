package mirror

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitkeep/internal/models"
)

func TestSettingsRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()

	settings := models.NotificationSettings{Enabled: true, MorningTime: "07:30", EveningTime: "21:00"}
	if err := m.SaveNotificationSettings(settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.GetNotificationSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != settings {
		t.Errorf("got %+v, want %+v", got, settings)
	}
}

func TestDefaultsWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()

	got, err := m.GetNotificationSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.DefaultNotificationSettings()
	if got != want {
		t.Errorf("got %+v, want defaults %+v", got, want)
	}
}

func TestSettingsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	settings := models.NotificationSettings{Enabled: true, MorningTime: "06:00", EveningTime: "22:00"}
	if err := m.SaveNotificationSettings(settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Close()

	m2, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m2.Close()

	got, err := m2.GetNotificationSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != settings {
		t.Errorf("got %+v, want %+v", got, settings)
	}
}

func TestSchemaVersionMismatchDropsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	settings := models.NotificationSettings{Enabled: true, MorningTime: "06:00", EveningTime: "22:00"}
	if err := m.SaveNotificationSettings(settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Close()

	// Simulate an old on-disk schema version.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("PRAGMA user_version = 1"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	m2, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m2.Close()

	got, err := m2.GetNotificationSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.DefaultNotificationSettings()
	if got != want {
		t.Errorf("expected reset to defaults after version mismatch, got %+v", got)
	}
}

func TestPutReplacesValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()

	if err := m.Put("k", "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Put("k", "second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got string
	found, err := m.Get("k", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected value")
	}
	if got != "second" {
		t.Errorf("got %q, want second", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()

	var out string
	found, err := m.Get("absent", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected key to be absent")
	}
}
