package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TASKMANAGER_ADDR", "")
	t.Setenv("TASKMANAGER_DB", "")
	t.Setenv("TASKMANAGER_JWT_SECRET", "")
	t.Setenv("REMINDER_TIME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.DatabasePath != "TaskManager.db" {
		t.Errorf("expected default database path, got %q", cfg.DatabasePath)
	}
	if cfg.ReminderTime != "08:00" || !cfg.ReminderEnabled() {
		t.Errorf("expected default reminder at 08:00, got %q", cfg.ReminderTime)
	}
}

func TestLoadReminderOff(t *testing.T) {
	t.Setenv("REMINDER_TIME", "off")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ReminderEnabled() {
		t.Error("expected reminder disabled with REMINDER_TIME=off")
	}
}

func TestLoadRejectsBadReminderTime(t *testing.T) {
	for _, bad := range []string{"25:00", "12:61", "noon", "12"} {
		t.Setenv("REMINDER_TIME", bad)
		if _, err := Load(); err == nil {
			t.Errorf("expected error for REMINDER_TIME=%q, got nil", bad)
		}
	}
}
