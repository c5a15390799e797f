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

// CreateProjectHandler creates a project in the first pipeline phase.
// POST /api/projects
func CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Could not read user ID from token.")
		return
	}

	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		DepartmentID *int64 `json:"department_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Project name must not be empty.")
		return
	}

	p := &models.Project{
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		Phase:        models.PhaseMeetings,
		Status:       models.ProjectActive,
		CreatedBy:    userID,
	}
	id, err := data.CreateProject(p)
	if err != nil {
		log.Printf("Error creating project for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Could not create project: "+err.Error())
		return
	}
	p.ID = id

	respondJSON(w, http.StatusCreated, p)
}

// GetProjectsHandler lists projects with optional phase/department filters.
// GET /api/projects?phase=&department_id=
func GetProjectsHandler(w http.ResponseWriter, r *http.Request) {
	phase := r.URL.Query().Get("phase")
	if phase != "" && !models.ValidPhase(phase) {
		respondError(w, http.StatusBadRequest, "Unknown phase: "+phase)
		return
	}
	departmentID, err := queryInt64(r, "department_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid department_id.")
		return
	}

	projects, err := data.GetProjects(phase, departmentID)
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not list projects: "+err.Error())
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProjectHandler returns one project.
// GET /api/projects/{id}
func GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	p, err := data.GetProjectByID(id)
	if err != nil {
		log.Printf("Error fetching project %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch project: "+err.Error())
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "Project not found.")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// UpdateProjectHandler updates the editable fields of a project.
// PUT /api/projects/{id}
func UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	p, err := data.GetProjectByID(id)
	if err != nil {
		log.Printf("Error fetching project %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch project: "+err.Error())
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "Project not found.")
		return
	}

	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		DepartmentID *int64 `json:"department_id"`
		Status       string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Project name must not be empty.")
		return
	}
	if req.Status != "" && !models.ValidProjectStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Unknown status: "+req.Status)
		return
	}

	p.Name = req.Name
	p.Description = req.Description
	p.DepartmentID = req.DepartmentID
	if req.Status != "" {
		p.Status = req.Status
	}

	if err := data.UpdateProject(p); err != nil {
		log.Printf("Error updating project %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update project: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// UpdateProjectPhaseHandler moves a project to another phase. The client
// drives the pipeline, so backward moves are allowed.
// PUT /api/projects/{id}/phase
func UpdateProjectPhaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	var req struct {
		Phase string `json:"phase"`
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

	if err := data.UpdateProjectPhase(id, req.Phase); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Project not found.")
			return
		}
		log.Printf("Error moving project %d to phase %q: %v", id, req.Phase, err)
		respondError(w, http.StatusInternalServerError, "Could not update project phase: "+err.Error())
		return
	}

	p, err := data.GetProjectByID(id)
	if err != nil || p == nil {
		respondError(w, http.StatusInternalServerError, "Could not fetch updated project.")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DeleteProjectHandler removes a project with its tasks and checklists.
// DELETE /api/projects/{id}
func DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	if err := data.DeleteProject(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Project not found.")
			return
		}
		log.Printf("Error deleting project %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not delete project: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
