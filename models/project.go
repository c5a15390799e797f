package models

import "time"

// Phases a project moves through. The pipeline order is fixed but the
// client may move a project backward as well as forward.
const (
	PhaseMeetings      = "meetings"
	PhasePlanning      = "planning"
	PhaseDevelopment   = "development"
	PhaseTesting       = "testing"
	PhaseDocumentation = "documentation"
)

// PhaseOrder lists the phases in pipeline order, for display and validation.
var PhaseOrder = []string{
	PhaseMeetings,
	PhasePlanning,
	PhaseDevelopment,
	PhaseTesting,
	PhaseDocumentation,
}

// ValidPhase reports whether phase names a known pipeline phase.
func ValidPhase(phase string) bool {
	for _, p := range PhaseOrder {
		if p == phase {
			return true
		}
	}
	return false
}

// Project statuses.
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"
)

// ValidProjectStatus reports whether status is a known project status.
func ValidProjectStatus(status string) bool {
	return status == ProjectActive || status == ProjectCompleted || status == ProjectArchived
}

// Project is a unit of work moving through the phase pipeline.
type Project struct {
	ID           int64     `json:"id" db:"Id"`
	Name         string    `json:"name" db:"Name"`
	Description  string    `json:"description" db:"Description"`
	DepartmentID *int64    `json:"department_id,omitempty" db:"DepartmentId"`
	Phase        string    `json:"phase" db:"Phase"`
	Status       string    `json:"status" db:"Status"`
	CreatedBy    int64     `json:"created_by" db:"CreatedBy"`
	CreatedAt    time.Time `json:"created_at" db:"CreatedAt"`
	UpdatedAt    time.Time `json:"updated_at" db:"UpdatedAt"`
}
