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

// CreateTaskHandler creates a task inside a project phase.
// POST /api/projects/{id}/tasks
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	project, err := data.GetProjectByID(projectID)
	if err != nil {
		log.Printf("Error fetching project %d: %v", projectID, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch project: "+err.Error())
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "Project not found.")
		return
	}

	var req struct {
		Phase       string  `json:"phase"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		AssigneeID  *int64  `json:"assignee_id"`
		DueDate     *string `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Task title must not be empty.")
		return
	}
	if req.Phase == "" {
		req.Phase = project.Phase
	}
	if !models.ValidPhase(req.Phase) {
		respondError(w, http.StatusBadRequest, "Unknown phase: "+req.Phase)
		return
	}
	if req.DueDate != nil {
		if _, err := time.Parse("2006-01-02", *req.DueDate); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due_date, expected yyyy-MM-dd.")
			return
		}
	}

	t := &models.Task{
		ProjectID:   projectID,
		Phase:       req.Phase,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskTodo,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	id, err := data.CreateTask(t)
	if err != nil {
		log.Printf("Error creating task in project %d: %v", projectID, err)
		respondError(w, http.StatusInternalServerError, "Could not create task: "+err.Error())
		return
	}
	t.ID = id

	respondJSON(w, http.StatusCreated, t)
}

// GetTasksHandler lists the tasks of a project, optionally for one phase.
// GET /api/projects/{id}/tasks?phase=
func GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}
	phase := r.URL.Query().Get("phase")
	if phase != "" && !models.ValidPhase(phase) {
		respondError(w, http.StatusBadRequest, "Unknown phase: "+phase)
		return
	}

	tasks, err := data.GetTasksForProject(projectID, phase)
	if err != nil {
		log.Printf("Error listing tasks for project %d: %v", projectID, err)
		respondError(w, http.StatusInternalServerError, "Could not list tasks: "+err.Error())
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	respondJSON(w, http.StatusOK, tasks)
}

// GetTaskHandler returns one task.
// GET /api/tasks/{id}
func GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	t, err := data.GetTaskByID(id)
	if err != nil {
		log.Printf("Error fetching task %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch task: "+err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Task not found.")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// UpdateTaskHandler updates the editable fields of a task.
// PUT /api/tasks/{id}
func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	t, err := data.GetTaskByID(id)
	if err != nil {
		log.Printf("Error fetching task %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch task: "+err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Task not found.")
		return
	}

	var req struct {
		Phase       string  `json:"phase"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		AssigneeID  *int64  `json:"assignee_id"`
		DueDate     *string `json:"due_date"`
		Position    *int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Task title must not be empty.")
		return
	}
	if req.Phase != "" {
		if !models.ValidPhase(req.Phase) {
			respondError(w, http.StatusBadRequest, "Unknown phase: "+req.Phase)
			return
		}
		t.Phase = req.Phase
	}
	if req.DueDate != nil {
		if _, err := time.Parse("2006-01-02", *req.DueDate); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due_date, expected yyyy-MM-dd.")
			return
		}
	}

	t.Title = req.Title
	t.Description = req.Description
	t.AssigneeID = req.AssigneeID
	t.DueDate = req.DueDate
	if req.Position != nil {
		t.Position = *req.Position
	}

	if err := data.UpdateTask(t); err != nil {
		log.Printf("Error updating task %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update task: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// UpdateTaskStatusHandler sets the status of a task. This is the endpoint
// behind the client's optimistic checkbox toggle.
// PUT /api/tasks/{id}/status
func UpdateTaskStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if !models.ValidTaskStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Unknown status: "+req.Status)
		return
	}

	if err := data.UpdateTaskStatus(id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Task not found.")
			return
		}
		log.Printf("Error updating status of task %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update task status: "+err.Error())
		return
	}

	t, err := data.GetTaskByID(id)
	if err != nil || t == nil {
		respondError(w, http.StatusInternalServerError, "Could not fetch updated task.")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// ReorderTasksHandler rewrites the position of tasks inside one phase column.
// PUT /api/projects/{id}/tasks/reorder
func ReorderTasksHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	var req struct {
		Phase   string  `json:"phase"`
		TaskIDs []int64 `json:"task_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if !models.ValidPhase(req.Phase) {
		respondError(w, http.StatusBadRequest, "Unknown phase: "+req.Phase)
		return
	}
	if len(req.TaskIDs) == 0 {
		respondError(w, http.StatusBadRequest, "task_ids must not be empty.")
		return
	}

	tx, err := data.GetDB().Beginx()
	if err != nil {
		log.Printf("Error starting reorder transaction: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not reorder tasks.")
		return
	}
	if err := data.ReorderTasksWithTx(tx, projectID, req.Phase, req.TaskIDs); err != nil {
		tx.Rollback()
		log.Printf("Error reordering tasks in project %d: %v", projectID, err)
		respondError(w, http.StatusBadRequest, "Could not reorder tasks: "+err.Error())
		return
	}
	if err := tx.Commit(); err != nil {
		log.Printf("Error committing reorder transaction: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not reorder tasks.")
		return
	}

	tasks, err := data.GetTasksForProject(projectID, req.Phase)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Reordered, but could not fetch tasks.")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// DeleteTaskHandler removes a task.
// DELETE /api/tasks/{id}
func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	if err := data.DeleteTask(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Task not found.")
			return
		}
		log.Printf("Error deleting task %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not delete task: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
