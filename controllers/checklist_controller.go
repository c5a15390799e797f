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

// CreateChecklistItemHandler adds a checklist line under a task.
// POST /api/tasks/{id}/checklist
func CreateChecklistItemHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	task, err := data.GetTaskByID(taskID)
	if err != nil {
		log.Printf("Error fetching task %d: %v", taskID, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch task: "+err.Error())
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found.")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Checklist item title must not be empty.")
		return
	}

	item := &models.ChecklistItem{TaskID: taskID, Title: req.Title}
	id, err := data.CreateChecklistItem(item)
	if err != nil {
		log.Printf("Error creating checklist item for task %d: %v", taskID, err)
		respondError(w, http.StatusInternalServerError, "Could not create checklist item: "+err.Error())
		return
	}
	item.ID = id

	respondJSON(w, http.StatusCreated, item)
}

// GetChecklistHandler lists the checklist of a task.
// GET /api/tasks/{id}/checklist
func GetChecklistHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	items, err := data.GetChecklistForTask(taskID)
	if err != nil {
		log.Printf("Error listing checklist for task %d: %v", taskID, err)
		respondError(w, http.StatusInternalServerError, "Could not list checklist: "+err.Error())
		return
	}
	if items == nil {
		items = []models.ChecklistItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// UpdateChecklistItemHandler updates a checklist line.
// PUT /api/checklist/{id}
func UpdateChecklistItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid checklist item ID.")
		return
	}

	item, err := data.GetChecklistItemByID(id)
	if err != nil {
		log.Printf("Error fetching checklist item %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch checklist item: "+err.Error())
		return
	}
	if item == nil {
		respondError(w, http.StatusNotFound, "Checklist item not found.")
		return
	}

	var req struct {
		Title    string `json:"title"`
		Position *int   `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Checklist item title must not be empty.")
		return
	}
	item.Title = req.Title
	if req.Position != nil {
		item.Position = *req.Position
	}

	if err := data.UpdateChecklistItem(item); err != nil {
		log.Printf("Error updating checklist item %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update checklist item: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// ToggleChecklistItemHandler flips the done flag of a checklist line.
// PUT /api/checklist/{id}/toggle
func ToggleChecklistItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid checklist item ID.")
		return
	}

	isDone, err := data.ToggleChecklistItem(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Checklist item not found.")
			return
		}
		log.Printf("Error toggling checklist item %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not toggle checklist item: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"id": id, "is_done": isDone})
}

// DeleteChecklistItemHandler removes a checklist line.
// DELETE /api/checklist/{id}
func DeleteChecklistItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid checklist item ID.")
		return
	}

	if err := data.DeleteChecklistItem(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Checklist item not found.")
			return
		}
		log.Printf("Error deleting checklist item %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not delete checklist item: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
