package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config keeps runtime settings for the server.
type Config struct {
	Addr         string // listen address, e.g. ":8080"
	DatabasePath string // SQLite file path
	JWTSecret    string // HMAC signing secret; empty keeps the built-in dev key
	ReminderTime string // "HH:MM" for the daily due-task summary; empty disables it
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:         strings.TrimSpace(os.Getenv("TASKMANAGER_ADDR")),
		DatabasePath: strings.TrimSpace(os.Getenv("TASKMANAGER_DB")),
		JWTSecret:    strings.TrimSpace(os.Getenv("TASKMANAGER_JWT_SECRET")),
		ReminderTime: strings.TrimSpace(os.Getenv("REMINDER_TIME")),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "TaskManager.db"
	}
	if cfg.ReminderTime == "" {
		cfg.ReminderTime = "08:00"
	} else if cfg.ReminderTime != "off" {
		if err := validateTime(cfg.ReminderTime); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// ReminderEnabled reports whether the daily reminder job should run.
func (c Config) ReminderEnabled() bool {
	return c.ReminderTime != "" && c.ReminderTime != "off"
}

func validateTime(timeStr string) error {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return fmt.Errorf("invalid REMINDER_TIME %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour in REMINDER_TIME %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid minute in REMINDER_TIME %q", timeStr)
	}
	return nil
}
