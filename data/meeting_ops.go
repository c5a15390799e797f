package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

// CreateMeeting inserts a new meeting and returns its ID.
func CreateMeeting(m *models.Meeting) (int64, error) {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO Meetings (ProjectId, Title, Date, Time, Location, Minutes, AttachmentUrl, CreatedBy, CreatedAt, UpdatedAt)
	          VALUES (:ProjectId, :Title, :Date, :Time, :Location, :Minutes, :AttachmentUrl, :CreatedBy, :CreatedAt, :UpdatedAt)`
	result, err := DB.NamedExec(query, m)
	if err != nil {
		return 0, fmt.Errorf("CreateMeeting: failed to insert: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateMeeting: failed to get LastInsertId: %w", err)
	}
	log.Printf("Created meeting %q with ID %d", m.Title, newID)
	return newID, nil
}

// GetMeetingByID fetches a meeting by ID. Returns (nil, nil) when absent.
func GetMeetingByID(id int64) (*models.Meeting, error) {
	m := &models.Meeting{}
	query := `SELECT Id, ProjectId, Title, Date, Time, Location, Minutes, AttachmentUrl, CreatedBy, CreatedAt, UpdatedAt
	          FROM Meetings WHERE Id = ?`
	err := DB.Get(m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetMeetingByID: failed to get meeting ID %d: %w", id, err)
	}
	return m, nil
}

// GetMeetings lists meetings, optionally filtered by project, by date then time.
func GetMeetings(projectID *int64) ([]models.Meeting, error) {
	query := `SELECT Id, ProjectId, Title, Date, Time, Location, Minutes, AttachmentUrl, CreatedBy, CreatedAt, UpdatedAt
	          FROM Meetings`
	args := []interface{}{}
	if projectID != nil {
		query += ` WHERE ProjectId = ?`
		args = append(args, *projectID)
	}
	query += ` ORDER BY Date DESC, Time DESC`

	var meetings []models.Meeting
	if err := DB.Select(&meetings, query, args...); err != nil {
		return nil, fmt.Errorf("GetMeetings: failed to list meetings: %w", err)
	}
	return meetings, nil
}

// UpdateMeeting updates the editable fields of a meeting.
func UpdateMeeting(m *models.Meeting) error {
	m.UpdatedAt = time.Now()
	query := `UPDATE Meetings SET
	          ProjectId = :ProjectId, Title = :Title, Date = :Date, Time = :Time,
	          Location = :Location, Minutes = :Minutes, AttachmentUrl = :AttachmentUrl, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := DB.NamedExec(query, m)
	if err != nil {
		return fmt.Errorf("UpdateMeeting: failed to update meeting ID %d: %w", m.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteMeeting removes a meeting.
func DeleteMeeting(id int64) error {
	result, err := DB.Exec(`DELETE FROM Meetings WHERE Id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteMeeting: failed to delete meeting ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Deleted meeting with ID %d", id)
	return nil
}
