package models

import "time"

// Meeting is a scheduled meeting, optionally tied to a project.
type Meeting struct {
	ID            int64     `json:"id" db:"Id"`
	ProjectID     *int64    `json:"project_id,omitempty" db:"ProjectId"`
	Title         string    `json:"title" db:"Title"`
	Date          string    `json:"date" db:"Date"` // "yyyy-MM-dd"
	Time          string    `json:"time" db:"Time"` // "HH:mm"
	Location      string    `json:"location" db:"Location"`
	Minutes       *string   `json:"minutes,omitempty" db:"Minutes"`
	AttachmentUrl *string   `json:"attachment_url,omitempty" db:"AttachmentUrl"`
	CreatedBy     int64     `json:"created_by" db:"CreatedBy"`
	CreatedAt     time.Time `json:"created_at" db:"CreatedAt"`
	UpdatedAt     time.Time `json:"updated_at" db:"UpdatedAt"`
}
