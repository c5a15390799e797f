package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

// CreateDepartment inserts a new department and returns its ID.
func CreateDepartment(dep *models.Department) (int64, error) {
	now := time.Now()
	dep.CreatedAt = now
	dep.UpdatedAt = now

	query := `INSERT INTO Departments (Name, Description, CreatedAt, UpdatedAt)
	          VALUES (:Name, :Description, :CreatedAt, :UpdatedAt)`
	result, err := DB.NamedExec(query, dep)
	if err != nil {
		return 0, fmt.Errorf("CreateDepartment: failed to insert: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateDepartment: failed to get LastInsertId: %w", err)
	}
	log.Printf("Created department %q with ID %d", dep.Name, newID)
	return newID, nil
}

// GetDepartmentByID fetches a department by ID. Returns (nil, nil) when absent.
func GetDepartmentByID(id int64) (*models.Department, error) {
	dep := &models.Department{}
	query := `SELECT Id, Name, Description, CreatedAt, UpdatedAt FROM Departments WHERE Id = ?`
	err := DB.Get(dep, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetDepartmentByID: failed to get department ID %d: %w", id, err)
	}
	return dep, nil
}

// GetAllDepartments lists departments by name.
func GetAllDepartments() ([]models.Department, error) {
	var deps []models.Department
	query := `SELECT Id, Name, Description, CreatedAt, UpdatedAt FROM Departments ORDER BY Name ASC`
	if err := DB.Select(&deps, query); err != nil {
		return nil, fmt.Errorf("GetAllDepartments: failed to list departments: %w", err)
	}
	return deps, nil
}

// UpdateDepartment updates name and description of a department.
func UpdateDepartment(dep *models.Department) error {
	dep.UpdatedAt = time.Now()
	query := `UPDATE Departments SET Name = :Name, Description = :Description, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := DB.NamedExec(query, dep)
	if err != nil {
		return fmt.Errorf("UpdateDepartment: failed to update department ID %d: %w", dep.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteDepartment removes a department. Dependent system task templates are
// removed by the schema's ON DELETE CASCADE; users and projects keep running
// with a NULL department.
func DeleteDepartment(id int64) error {
	result, err := DB.Exec(`DELETE FROM Departments WHERE Id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteDepartment: failed to delete department ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Deleted department with ID %d", id)
	return nil
}
