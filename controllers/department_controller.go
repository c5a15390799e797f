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

// CreateDepartmentHandler creates a department.
// POST /api/departments
func CreateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Department name must not be empty.")
		return
	}

	dep := &models.Department{Name: req.Name, Description: req.Description}
	id, err := data.CreateDepartment(dep)
	if err != nil {
		log.Printf("Error creating department %q: %v", req.Name, err)
		respondError(w, http.StatusInternalServerError, "Could not create department: "+err.Error())
		return
	}
	dep.ID = id

	respondJSON(w, http.StatusCreated, dep)
}

// GetDepartmentsHandler lists all departments.
// GET /api/departments
func GetDepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	deps, err := data.GetAllDepartments()
	if err != nil {
		log.Printf("Error listing departments: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not list departments: "+err.Error())
		return
	}
	if deps == nil {
		deps = []models.Department{}
	}
	respondJSON(w, http.StatusOK, deps)
}

// GetDepartmentHandler returns one department.
// GET /api/departments/{id}
func GetDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid department ID.")
		return
	}

	dep, err := data.GetDepartmentByID(id)
	if err != nil {
		log.Printf("Error fetching department %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch department: "+err.Error())
		return
	}
	if dep == nil {
		respondError(w, http.StatusNotFound, "Department not found.")
		return
	}
	respondJSON(w, http.StatusOK, dep)
}

// UpdateDepartmentHandler updates name and description.
// PUT /api/departments/{id}
func UpdateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid department ID.")
		return
	}

	dep, err := data.GetDepartmentByID(id)
	if err != nil {
		log.Printf("Error fetching department %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch department: "+err.Error())
		return
	}
	if dep == nil {
		respondError(w, http.StatusNotFound, "Department not found.")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Department name must not be empty.")
		return
	}
	dep.Name = req.Name
	dep.Description = req.Description

	if err := data.UpdateDepartment(dep); err != nil {
		log.Printf("Error updating department %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update department: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, dep)
}

// DeleteDepartmentHandler removes a department (admin only, wired in main).
// DELETE /api/departments/{id}
func DeleteDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid department ID.")
		return
	}

	if err := data.DeleteDepartment(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Department not found.")
			return
		}
		log.Printf("Error deleting department %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not delete department: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
