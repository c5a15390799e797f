package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

// CreateProject inserts a new project and returns its ID.
func CreateProject(p *models.Project) (int64, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Phase == "" {
		p.Phase = models.PhaseMeetings
	}
	if p.Status == "" {
		p.Status = models.ProjectActive
	}

	query := `INSERT INTO Projects (Name, Description, DepartmentId, Phase, Status, CreatedBy, CreatedAt, UpdatedAt)
	          VALUES (:Name, :Description, :DepartmentId, :Phase, :Status, :CreatedBy, :CreatedAt, :UpdatedAt)`
	result, err := DB.NamedExec(query, p)
	if err != nil {
		return 0, fmt.Errorf("CreateProject: failed to insert: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateProject: failed to get LastInsertId: %w", err)
	}
	log.Printf("Created project %q with ID %d", p.Name, newID)
	return newID, nil
}

// GetProjectByID fetches a project by ID. Returns (nil, nil) when absent.
func GetProjectByID(id int64) (*models.Project, error) {
	p := &models.Project{}
	query := `SELECT Id, Name, Description, DepartmentId, Phase, Status, CreatedBy, CreatedAt, UpdatedAt
	          FROM Projects WHERE Id = ?`
	err := DB.Get(p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetProjectByID: failed to get project ID %d: %w", id, err)
	}
	return p, nil
}

// GetProjects lists projects, optionally filtered by phase and department.
func GetProjects(phase string, departmentID *int64) ([]models.Project, error) {
	query := `SELECT Id, Name, Description, DepartmentId, Phase, Status, CreatedBy, CreatedAt, UpdatedAt
	          FROM Projects WHERE 1=1`
	args := []interface{}{}
	if phase != "" {
		query += ` AND Phase = ?`
		args = append(args, phase)
	}
	if departmentID != nil {
		query += ` AND DepartmentId = ?`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY UpdatedAt DESC`

	var projects []models.Project
	if err := DB.Select(&projects, query, args...); err != nil {
		return nil, fmt.Errorf("GetProjects: failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProject updates the editable fields of a project.
func UpdateProject(p *models.Project) error {
	p.UpdatedAt = time.Now()
	query := `UPDATE Projects SET
	          Name = :Name, Description = :Description, DepartmentId = :DepartmentId,
	          Status = :Status, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := DB.NamedExec(query, p)
	if err != nil {
		return fmt.Errorf("UpdateProject: failed to update project ID %d: %w", p.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Updated project with ID %d", p.ID)
	return nil
}

// UpdateProjectPhase moves a project to another pipeline phase.
func UpdateProjectPhase(id int64, phase string) error {
	now := time.Now()
	result, err := DB.Exec(`UPDATE Projects SET Phase = ?, UpdatedAt = ? WHERE Id = ?`, phase, now, id)
	if err != nil {
		return fmt.Errorf("UpdateProjectPhase: failed to update project ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Moved project %d to phase %q", id, phase)
	return nil
}

// DeleteProject removes a project and, via cascade, its tasks and checklists.
func DeleteProject(id int64) error {
	result, err := DB.Exec(`DELETE FROM Projects WHERE Id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteProject: failed to delete project ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Deleted project with ID %d", id)
	return nil
}
