package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"

	"github.com/jmoiron/sqlx"
)

// CreateTask inserts a new task and returns its ID. Position defaults to
// the end of the phase column.
func CreateTask(t *models.Task) (int64, error) {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = models.TaskTodo
	}
	if t.Position == 0 {
		var maxPos sql.NullInt64
		err := DB.Get(&maxPos, `SELECT MAX(Position) FROM Tasks WHERE ProjectId = ? AND Phase = ?`, t.ProjectID, t.Phase)
		if err == nil && maxPos.Valid {
			t.Position = int(maxPos.Int64) + 1
		}
	}

	query := `INSERT INTO Tasks (ProjectId, Phase, Title, Description, Status, AssigneeId, DueDate, Position, CreatedAt, UpdatedAt, CompletedAt)
	          VALUES (:ProjectId, :Phase, :Title, :Description, :Status, :AssigneeId, :DueDate, :Position, :CreatedAt, :UpdatedAt, :CompletedAt)`
	result, err := DB.NamedExec(query, t)
	if err != nil {
		return 0, fmt.Errorf("CreateTask: failed to insert: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateTask: failed to get LastInsertId: %w", err)
	}
	log.Printf("Created task %q with ID %d in project %d", t.Title, newID, t.ProjectID)
	return newID, nil
}

// GetTaskByID fetches a task by ID. Returns (nil, nil) when absent.
func GetTaskByID(id int64) (*models.Task, error) {
	t := &models.Task{}
	query := `SELECT Id, ProjectId, Phase, Title, Description, Status, AssigneeId, DueDate, Position, CreatedAt, UpdatedAt, CompletedAt
	          FROM Tasks WHERE Id = ?`
	err := DB.Get(t, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetTaskByID: failed to get task ID %d: %w", id, err)
	}
	return t, nil
}

// GetTasksForProject lists the tasks of a project, optionally filtered by
// phase, ordered by column position.
func GetTasksForProject(projectID int64, phase string) ([]models.Task, error) {
	query := `SELECT Id, ProjectId, Phase, Title, Description, Status, AssigneeId, DueDate, Position, CreatedAt, UpdatedAt, CompletedAt
	          FROM Tasks WHERE ProjectId = ?`
	args := []interface{}{projectID}
	if phase != "" {
		query += ` AND Phase = ?`
		args = append(args, phase)
	}
	query += ` ORDER BY Position ASC, Id ASC`

	var tasks []models.Task
	if err := DB.Select(&tasks, query, args...); err != nil {
		return nil, fmt.Errorf("GetTasksForProject: failed to list tasks for project %d: %w", projectID, err)
	}
	return tasks, nil
}

// UpdateTask updates the editable fields of a task.
func UpdateTask(t *models.Task) error {
	t.UpdatedAt = time.Now()
	query := `UPDATE Tasks SET
	          Phase = :Phase, Title = :Title, Description = :Description,
	          AssigneeId = :AssigneeId, DueDate = :DueDate, Position = :Position, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := DB.NamedExec(query, t)
	if err != nil {
		return fmt.Errorf("UpdateTask: failed to update task ID %d: %w", t.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateTaskStatus sets the status of a task. CompletedAt is stamped when a
// task becomes done and cleared when it is reopened.
func UpdateTaskStatus(id int64, status string) error {
	now := time.Now()
	var completedAt *time.Time
	if status == models.TaskDone {
		completedAt = &now
	}
	result, err := DB.Exec(`UPDATE Tasks SET Status = ?, CompletedAt = ?, UpdatedAt = ? WHERE Id = ?`,
		status, completedAt, now, id)
	if err != nil {
		return fmt.Errorf("UpdateTaskStatus: failed to update task ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Task %d status set to %q", id, status)
	return nil
}

// DeleteTask removes a task and, via cascade, its checklist items.
func DeleteTask(id int64) error {
	result, err := DB.Exec(`DELETE FROM Tasks WHERE Id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteTask: failed to delete task ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Deleted task with ID %d", id)
	return nil
}

// ReorderTasksWithTx rewrites the positions of the given task IDs inside one
// project phase, in a single transaction.
func ReorderTasksWithTx(tx *sqlx.Tx, projectID int64, phase string, orderedIDs []int64) error {
	now := time.Now()
	for pos, id := range orderedIDs {
		result, err := tx.Exec(`UPDATE Tasks SET Position = ?, UpdatedAt = ? WHERE Id = ? AND ProjectId = ? AND Phase = ?`,
			pos, now, id, projectID, phase)
		if err != nil {
			return fmt.Errorf("ReorderTasksWithTx: failed to move task ID %d: %w", id, err)
		}
		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			return fmt.Errorf("ReorderTasksWithTx: task ID %d not found in project %d phase %q", id, projectID, phase)
		}
	}
	return nil
}
