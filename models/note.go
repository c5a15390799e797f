package models

import "time"

// Note kinds. GA notes are general announcements, KA notes are
// department-internal working notes.
const (
	NoteKindGA = "ga"
	NoteKindKA = "ka"
)

// ValidNoteKind reports whether kind names a known note kind.
func ValidNoteKind(kind string) bool {
	return kind == NoteKindGA || kind == NoteKindKA
}

// Note is a free-form staff note attached to a department.
type Note struct {
	ID           int64     `json:"id" db:"Id"`
	Kind         string    `json:"kind" db:"Kind"`
	DepartmentID *int64    `json:"department_id,omitempty" db:"DepartmentId"`
	Title        string    `json:"title" db:"Title"`
	Content      *string   `json:"content,omitempty" db:"Content"`
	AuthorID     int64     `json:"author_id" db:"AuthorId"`
	CreatedAt    time.Time `json:"created_at" db:"CreatedAt"`
	UpdatedAt    time.Time `json:"updated_at" db:"UpdatedAt"`
}
