package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

// CreateNote inserts a new note and returns its ID.
func CreateNote(n *models.Note) (int64, error) {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	query := `INSERT INTO Notes (Kind, DepartmentId, Title, Content, AuthorId, CreatedAt, UpdatedAt)
	          VALUES (:Kind, :DepartmentId, :Title, :Content, :AuthorId, :CreatedAt, :UpdatedAt)`
	result, err := DB.NamedExec(query, n)
	if err != nil {
		return 0, fmt.Errorf("CreateNote: failed to insert: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateNote: failed to get LastInsertId: %w", err)
	}
	log.Printf("Created %s note with ID %d", n.Kind, newID)
	return newID, nil
}

// GetNoteByID fetches a note by ID. Returns (nil, nil) when absent.
func GetNoteByID(id int64) (*models.Note, error) {
	n := &models.Note{}
	query := `SELECT Id, Kind, DepartmentId, Title, Content, AuthorId, CreatedAt, UpdatedAt
	          FROM Notes WHERE Id = ?`
	err := DB.Get(n, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetNoteByID: failed to get note ID %d: %w", id, err)
	}
	return n, nil
}

// GetNotes lists notes, optionally filtered by kind and department,
// newest first.
func GetNotes(kind string, departmentID *int64) ([]models.Note, error) {
	query := `SELECT Id, Kind, DepartmentId, Title, Content, AuthorId, CreatedAt, UpdatedAt
	          FROM Notes WHERE 1=1`
	args := []interface{}{}
	if kind != "" {
		query += ` AND Kind = ?`
		args = append(args, kind)
	}
	if departmentID != nil {
		query += ` AND DepartmentId = ?`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY UpdatedAt DESC`

	var notes []models.Note
	if err := DB.Select(&notes, query, args...); err != nil {
		return nil, fmt.Errorf("GetNotes: failed to list notes: %w", err)
	}
	return notes, nil
}

// UpdateNote updates the editable fields of a note.
func UpdateNote(n *models.Note) error {
	n.UpdatedAt = time.Now()
	query := `UPDATE Notes SET
	          Kind = :Kind, DepartmentId = :DepartmentId, Title = :Title, Content = :Content, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := DB.NamedExec(query, n)
	if err != nil {
		return fmt.Errorf("UpdateNote: failed to update note ID %d: %w", n.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteNote removes a note.
func DeleteNote(id int64) error {
	result, err := DB.Exec(`DELETE FROM Notes WHERE Id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteNote: failed to delete note ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Deleted note with ID %d", id)
	return nil
}
