package models

import (
	"encoding/json"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/schedule"
)

// SystemTaskTemplate defines a recurring department task. The calendar rules
// (frequency, day fields) are evaluated by the schedule package; nothing
// derived from them is ever stored.
type SystemTaskTemplate struct {
	ID             int64     `json:"id" db:"Id"`
	DepartmentID   int64     `json:"department_id" db:"DepartmentId"`
	Title          string    `json:"title" db:"Title"`
	Description    string    `json:"description" db:"Description"`
	Frequency      string    `json:"frequency" db:"Frequency"`
	DaysOfWeekJson *string   `json:"-" db:"DaysOfWeekJson"`
	DayOfWeek      *int      `json:"day_of_week,omitempty" db:"DayOfWeek"` // legacy single-day field
	DayOfMonth     *int      `json:"day_of_month,omitempty" db:"DayOfMonth"`
	MonthOfYear    *int      `json:"month_of_year,omitempty" db:"MonthOfYear"`
	IsActive       bool      `json:"is_active" db:"IsActive"`
	CreatedBy      int64     `json:"created_by" db:"CreatedBy"`
	CreatedAt      time.Time `json:"created_at" db:"CreatedAt"`
	UpdatedAt      time.Time `json:"updated_at" db:"UpdatedAt"`

	DaysOfWeek []int `json:"days_of_week,omitempty" db:"-"`
}

// UpdateJsonProperties serializes DaysOfWeek into the stored JSON column.
func (t *SystemTaskTemplate) UpdateJsonProperties() error {
	if len(t.DaysOfWeek) == 0 {
		t.DaysOfWeekJson = nil
		return nil
	}
	raw, err := json.Marshal(t.DaysOfWeek)
	if err != nil {
		return err
	}
	s := string(raw)
	t.DaysOfWeekJson = &s
	return nil
}

// LoadJsonProperties deserializes the stored JSON column into DaysOfWeek.
// A malformed column degrades to an empty set rather than failing the read.
func (t *SystemTaskTemplate) LoadJsonProperties() {
	t.DaysOfWeek = nil
	if t.DaysOfWeekJson == nil || *t.DaysOfWeekJson == "" {
		return
	}
	if err := json.Unmarshal([]byte(*t.DaysOfWeekJson), &t.DaysOfWeek); err != nil {
		t.DaysOfWeek = nil
	}
}

// ScheduleTemplate converts the stored record into the pure evaluator input.
func (t *SystemTaskTemplate) ScheduleTemplate() schedule.Template {
	return schedule.Template{
		Frequency:   schedule.Frequency(t.Frequency),
		DaysOfWeek:  t.DaysOfWeek,
		DayOfWeek:   t.DayOfWeek,
		DayOfMonth:  t.DayOfMonth,
		MonthOfYear: t.MonthOfYear,
	}
}

// SystemTaskCompletion marks one occurrence of a template as done.
// Uniqueness on (template, date) is enforced by the schema.
type SystemTaskCompletion struct {
	ID          int64     `json:"id" db:"Id"`
	TemplateID  int64     `json:"template_id" db:"TemplateId"`
	Date        string    `json:"date" db:"Date"` // "yyyy-MM-dd"
	CompletedBy int64     `json:"completed_by" db:"CompletedBy"`
	CompletedAt time.Time `json:"completed_at" db:"CompletedAt"`
}

// DueSystemTask is the API shape for a template due on a queried date.
type DueSystemTask struct {
	Template     SystemTaskTemplate `json:"template"`
	ResolvedDate string             `json:"resolved_date"`
	IsCompleted  bool               `json:"is_completed"`
	CompletedBy  *int64             `json:"completed_by,omitempty"`
}
