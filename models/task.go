package models

import "time"

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

// ValidTaskStatus reports whether status is a known task status.
func ValidTaskStatus(status string) bool {
	return status == TaskTodo || status == TaskInProgress || status == TaskDone
}

// Task is an ad-hoc piece of work inside a project phase.
type Task struct {
	ID          int64      `json:"id" db:"Id"`
	ProjectID   int64      `json:"project_id" db:"ProjectId"`
	Phase       string     `json:"phase" db:"Phase"`
	Title       string     `json:"title" db:"Title"`
	Description string     `json:"description" db:"Description"`
	Status      string     `json:"status" db:"Status"`
	AssigneeID  *int64     `json:"assignee_id,omitempty" db:"AssigneeId"`
	DueDate     *string    `json:"due_date,omitempty" db:"DueDate"` // "yyyy-MM-dd"
	Position    int        `json:"position" db:"Position"`
	CreatedAt   time.Time  `json:"created_at" db:"CreatedAt"`
	UpdatedAt   time.Time  `json:"updated_at" db:"UpdatedAt"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"CompletedAt"`
}
