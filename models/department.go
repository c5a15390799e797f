package models

import "time"

// Department groups users, notes and system tasks.
type Department struct {
	ID          int64     `json:"id" db:"Id"`
	Name        string    `json:"name" db:"Name"`
	Description string    `json:"description" db:"Description"`
	CreatedAt   time.Time `json:"-" db:"CreatedAt"`
	UpdatedAt   time.Time `json:"-" db:"UpdatedAt"`
}
