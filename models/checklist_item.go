package models

import "time"

// ChecklistItem is a single checkbox line under a task.
type ChecklistItem struct {
	ID        int64     `json:"id" db:"Id"`
	TaskID    int64     `json:"task_id" db:"TaskId"`
	Title     string    `json:"title" db:"Title"`
	IsDone    bool      `json:"is_done" db:"IsDone"`
	Position  int       `json:"position" db:"Position"`
	CreatedAt time.Time `json:"-" db:"CreatedAt"`
	UpdatedAt time.Time `json:"-" db:"UpdatedAt"`
}
