package data

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

// CreateChecklistItem inserts a checklist item under a task.
func CreateChecklistItem(item *models.ChecklistItem) (int64, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Position == 0 {
		var maxPos sql.NullInt64
		err := DB.Get(&maxPos, `SELECT MAX(Position) FROM ChecklistItems WHERE TaskId = ?`, item.TaskID)
		if err == nil && maxPos.Valid {
			item.Position = int(maxPos.Int64) + 1
		}
	}

	query := `INSERT INTO ChecklistItems (TaskId, Title, IsDone, Position, CreatedAt, UpdatedAt)
	          VALUES (:TaskId, :Title, :IsDone, :Position, :CreatedAt, :UpdatedAt)`
	result, err := DB.NamedExec(query, item)
	if err != nil {
		return 0, fmt.Errorf("CreateChecklistItem: failed to insert: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateChecklistItem: failed to get LastInsertId: %w", err)
	}
	return newID, nil
}

// GetChecklistItemByID fetches an item by ID. Returns (nil, nil) when absent.
func GetChecklistItemByID(id int64) (*models.ChecklistItem, error) {
	item := &models.ChecklistItem{}
	query := `SELECT Id, TaskId, Title, IsDone, Position, CreatedAt, UpdatedAt
	          FROM ChecklistItems WHERE Id = ?`
	err := DB.Get(item, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetChecklistItemByID: failed to get item ID %d: %w", id, err)
	}
	return item, nil
}

// GetChecklistForTask lists the checklist of a task in position order.
func GetChecklistForTask(taskID int64) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	query := `SELECT Id, TaskId, Title, IsDone, Position, CreatedAt, UpdatedAt
	          FROM ChecklistItems WHERE TaskId = ? ORDER BY Position ASC, Id ASC`
	if err := DB.Select(&items, query, taskID); err != nil {
		return nil, fmt.Errorf("GetChecklistForTask: failed to list items for task %d: %w", taskID, err)
	}
	return items, nil
}

// UpdateChecklistItem updates title and position of an item.
func UpdateChecklistItem(item *models.ChecklistItem) error {
	item.UpdatedAt = time.Now()
	query := `UPDATE ChecklistItems SET Title = :Title, Position = :Position, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := DB.NamedExec(query, item)
	if err != nil {
		return fmt.Errorf("UpdateChecklistItem: failed to update item ID %d: %w", item.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ToggleChecklistItem flips the done flag and returns the new value.
func ToggleChecklistItem(id int64) (bool, error) {
	now := time.Now()
	result, err := DB.Exec(`UPDATE ChecklistItems SET IsDone = NOT IsDone, UpdatedAt = ? WHERE Id = ?`, now, id)
	if err != nil {
		return false, fmt.Errorf("ToggleChecklistItem: failed to toggle item ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return false, sql.ErrNoRows
	}

	var isDone bool
	if err := DB.Get(&isDone, `SELECT IsDone FROM ChecklistItems WHERE Id = ?`, id); err != nil {
		return false, fmt.Errorf("ToggleChecklistItem: failed to read back item ID %d: %w", id, err)
	}
	return isDone, nil
}

// DeleteChecklistItem removes an item.
func DeleteChecklistItem(id int64) error {
	result, err := DB.Exec(`DELETE FROM ChecklistItems WHERE Id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteChecklistItem: failed to delete item ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
