package models

import "time"

// Roles a user account can hold. Managers and admins maintain system task
// templates; admins additionally manage departments and roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleStaff
}

// User represents a staff account.
type User struct {
	ID           int64     `json:"id" db:"Id"`
	Email        string    `json:"email" db:"Email"`
	DisplayName  string    `json:"display_name" db:"DisplayName"`
	PhotoUrl     string    `json:"photo_url" db:"PhotoUrl"`
	Role         string    `json:"role" db:"Role"`
	DepartmentID *int64    `json:"department_id,omitempty" db:"DepartmentId"`
	PasswordHash string    `json:"-" db:"PasswordHash"`
	CreatedAt    time.Time `json:"-" db:"CreatedAt"`
	UpdatedAt    time.Time `json:"-" db:"UpdatedAt"`
}
