package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/data"
	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

func validMeetingDateTime(date, timeStr string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errors.New("invalid date, expected yyyy-MM-dd")
	}
	if _, err := time.Parse("15:04", timeStr); err != nil {
		return errors.New("invalid time, expected HH:mm")
	}
	return nil
}

// CreateMeetingHandler creates a meeting, optionally tied to a project.
// POST /api/meetings
func CreateMeetingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Could not read user ID from token.")
		return
	}

	var req struct {
		ProjectID     *int64  `json:"project_id"`
		Title         string  `json:"title"`
		Date          string  `json:"date"`
		Time          string  `json:"time"`
		Location      string  `json:"location"`
		Minutes       *string `json:"minutes"`
		AttachmentUrl *string `json:"attachment_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Meeting title must not be empty.")
		return
	}
	if err := validMeetingDateTime(req.Date, req.Time); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProjectID != nil {
		project, err := data.GetProjectByID(*req.ProjectID)
		if err != nil || project == nil {
			respondError(w, http.StatusBadRequest, "Unknown project.")
			return
		}
	}

	m := &models.Meeting{
		ProjectID:     req.ProjectID,
		Title:         req.Title,
		Date:          req.Date,
		Time:          req.Time,
		Location:      req.Location,
		Minutes:       req.Minutes,
		AttachmentUrl: req.AttachmentUrl,
		CreatedBy:     userID,
	}
	id, err := data.CreateMeeting(m)
	if err != nil {
		log.Printf("Error creating meeting for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Could not create meeting: "+err.Error())
		return
	}
	m.ID = id

	respondJSON(w, http.StatusCreated, m)
}

// GetMeetingsHandler lists meetings with an optional project filter.
// GET /api/meetings?project_id=
func GetMeetingsHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryInt64(r, "project_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project_id.")
		return
	}

	meetings, err := data.GetMeetings(projectID)
	if err != nil {
		log.Printf("Error listing meetings: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not list meetings: "+err.Error())
		return
	}
	if meetings == nil {
		meetings = []models.Meeting{}
	}
	respondJSON(w, http.StatusOK, meetings)
}

// GetMeetingHandler returns one meeting.
// GET /api/meetings/{id}
func GetMeetingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meeting ID.")
		return
	}

	m, err := data.GetMeetingByID(id)
	if err != nil {
		log.Printf("Error fetching meeting %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch meeting: "+err.Error())
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "Meeting not found.")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// UpdateMeetingHandler updates a meeting, including its minutes.
// PUT /api/meetings/{id}
func UpdateMeetingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meeting ID.")
		return
	}

	m, err := data.GetMeetingByID(id)
	if err != nil {
		log.Printf("Error fetching meeting %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch meeting: "+err.Error())
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "Meeting not found.")
		return
	}

	var req struct {
		ProjectID     *int64  `json:"project_id"`
		Title         string  `json:"title"`
		Date          string  `json:"date"`
		Time          string  `json:"time"`
		Location      string  `json:"location"`
		Minutes       *string `json:"minutes"`
		AttachmentUrl *string `json:"attachment_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Meeting title must not be empty.")
		return
	}
	if err := validMeetingDateTime(req.Date, req.Time); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m.ProjectID = req.ProjectID
	m.Title = req.Title
	m.Date = req.Date
	m.Time = req.Time
	m.Location = req.Location
	m.Minutes = req.Minutes
	m.AttachmentUrl = req.AttachmentUrl

	if err := data.UpdateMeeting(m); err != nil {
		log.Printf("Error updating meeting %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update meeting: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// DeleteMeetingHandler removes a meeting.
// DELETE /api/meetings/{id}
func DeleteMeetingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meeting ID.")
		return
	}

	if err := data.DeleteMeeting(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Meeting not found.")
			return
		}
		log.Printf("Error deleting meeting %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not delete meeting: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
