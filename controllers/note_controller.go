package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/elsaferati/Primex-TaskManager-sub003/data"
	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

// CreateNoteHandler creates a GA or KA note.
// POST /api/notes
func CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Could not read user ID from token.")
		return
	}

	var req struct {
		Kind         string  `json:"kind"`
		DepartmentID *int64  `json:"department_id"`
		Title        string  `json:"title"`
		Content      *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if !models.ValidNoteKind(req.Kind) {
		respondError(w, http.StatusBadRequest, "Unknown note kind: "+req.Kind)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Note title must not be empty.")
		return
	}

	n := &models.Note{
		Kind:         req.Kind,
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Content:      req.Content,
		AuthorID:     userID,
	}
	id, err := data.CreateNote(n)
	if err != nil {
		log.Printf("Error creating note for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Could not create note: "+err.Error())
		return
	}
	n.ID = id

	respondJSON(w, http.StatusCreated, n)
}

// GetNotesHandler lists notes with optional kind/department filters.
// GET /api/notes?kind=&department_id=
func GetNotesHandler(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "" && !models.ValidNoteKind(kind) {
		respondError(w, http.StatusBadRequest, "Unknown note kind: "+kind)
		return
	}
	departmentID, err := queryInt64(r, "department_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid department_id.")
		return
	}

	notes, err := data.GetNotes(kind, departmentID)
	if err != nil {
		log.Printf("Error listing notes: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not list notes: "+err.Error())
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	respondJSON(w, http.StatusOK, notes)
}

// GetNoteHandler returns one note.
// GET /api/notes/{id}
func GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID.")
		return
	}

	n, err := data.GetNoteByID(id)
	if err != nil {
		log.Printf("Error fetching note %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch note: "+err.Error())
		return
	}
	if n == nil {
		respondError(w, http.StatusNotFound, "Note not found.")
		return
	}
	respondJSON(w, http.StatusOK, n)
}

// UpdateNoteHandler updates a note.
// PUT /api/notes/{id}
func UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID.")
		return
	}

	n, err := data.GetNoteByID(id)
	if err != nil {
		log.Printf("Error fetching note %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch note: "+err.Error())
		return
	}
	if n == nil {
		respondError(w, http.StatusNotFound, "Note not found.")
		return
	}

	var req struct {
		Kind         string  `json:"kind"`
		DepartmentID *int64  `json:"department_id"`
		Title        string  `json:"title"`
		Content      *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.Kind != "" {
		if !models.ValidNoteKind(req.Kind) {
			respondError(w, http.StatusBadRequest, "Unknown note kind: "+req.Kind)
			return
		}
		n.Kind = req.Kind
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Note title must not be empty.")
		return
	}
	n.Title = req.Title
	n.Content = req.Content
	n.DepartmentID = req.DepartmentID

	if err := data.UpdateNote(n); err != nil {
		log.Printf("Error updating note %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update note: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, n)
}

// DeleteNoteHandler removes a note.
// DELETE /api/notes/{id}
func DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID.")
		return
	}

	if err := data.DeleteNote(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Note not found.")
			return
		}
		log.Printf("Error deleting note %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not delete note: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
