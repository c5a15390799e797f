package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/data"
	"github.com/elsaferati/Primex-TaskManager-sub003/models"
	"github.com/elsaferati/Primex-TaskManager-sub003/schedule"
)

// systemTaskRequest is the create/update body for a template.
type systemTaskRequest struct {
	DepartmentID int64  `json:"department_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Frequency    string `json:"frequency"`
	DaysOfWeek   []int  `json:"days_of_week"`
	DayOfWeek    *int   `json:"day_of_week"`
	DayOfMonth   *int   `json:"day_of_month"`
	MonthOfYear  *int   `json:"month_of_year"`
	IsActive     *bool  `json:"is_active"`
}

func (req *systemTaskRequest) validate() error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.New("title must not be empty")
	}
	if !schedule.ValidFrequency(schedule.Frequency(req.Frequency)) {
		return fmt.Errorf("unknown frequency: %q", req.Frequency)
	}
	for _, d := range req.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("day of week %d out of range 0..6", d)
		}
	}
	if req.DayOfWeek != nil && (*req.DayOfWeek < 0 || *req.DayOfWeek > 6) {
		return fmt.Errorf("day of week %d out of range 0..6", *req.DayOfWeek)
	}
	if req.DayOfMonth != nil && (*req.DayOfMonth < schedule.DayFirstWorkingDay || *req.DayOfMonth > 31) {
		return fmt.Errorf("day of month %d out of range -1..31", *req.DayOfMonth)
	}
	if req.MonthOfYear != nil && (*req.MonthOfYear < 1 || *req.MonthOfYear > 12) {
		return fmt.Errorf("month of year %d out of range 1..12", *req.MonthOfYear)
	}
	return nil
}

// CreateSystemTaskHandler creates a recurring task template (manager/admin).
// POST /api/system-tasks
func CreateSystemTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Could not read user ID from token.")
		return
	}

	var req systemTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dep, err := data.GetDepartmentByID(req.DepartmentID)
	if err != nil || dep == nil {
		respondError(w, http.StatusBadRequest, "Unknown department.")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	t := &models.SystemTaskTemplate{
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Description:  req.Description,
		Frequency:    req.Frequency,
		DaysOfWeek:   req.DaysOfWeek,
		DayOfWeek:    req.DayOfWeek,
		DayOfMonth:   req.DayOfMonth,
		MonthOfYear:  req.MonthOfYear,
		IsActive:     isActive,
		CreatedBy:    userID,
	}
	id, err := data.CreateSystemTaskTemplate(t)
	if err != nil {
		log.Printf("Error creating system task template: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not create template: "+err.Error())
		return
	}
	t.ID = id

	respondJSON(w, http.StatusCreated, t)
}

// GetSystemTasksHandler lists templates with optional filters.
// GET /api/system-tasks?department_id=&active=
func GetSystemTasksHandler(w http.ResponseWriter, r *http.Request) {
	departmentID, err := queryInt64(r, "department_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid department_id.")
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	templates, err := data.GetSystemTaskTemplates(departmentID, activeOnly)
	if err != nil {
		log.Printf("Error listing system task templates: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not list templates: "+err.Error())
		return
	}
	if templates == nil {
		templates = []models.SystemTaskTemplate{}
	}
	respondJSON(w, http.StatusOK, templates)
}

// GetSystemTaskHandler returns one template.
// GET /api/system-tasks/{id}
func GetSystemTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template ID.")
		return
	}

	t, err := data.GetSystemTaskTemplateByID(id)
	if err != nil {
		log.Printf("Error fetching system task template %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch template: "+err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Template not found.")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// UpdateSystemTaskHandler updates a template (manager/admin).
// PUT /api/system-tasks/{id}
func UpdateSystemTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template ID.")
		return
	}

	t, err := data.GetSystemTaskTemplateByID(id)
	if err != nil {
		log.Printf("Error fetching system task template %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch template: "+err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Template not found.")
		return
	}

	var req systemTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DepartmentID != 0 && req.DepartmentID != t.DepartmentID {
		dep, err := data.GetDepartmentByID(req.DepartmentID)
		if err != nil || dep == nil {
			respondError(w, http.StatusBadRequest, "Unknown department.")
			return
		}
		t.DepartmentID = req.DepartmentID
	}

	t.Title = req.Title
	t.Description = req.Description
	t.Frequency = req.Frequency
	t.DaysOfWeek = req.DaysOfWeek
	t.DayOfWeek = req.DayOfWeek
	t.DayOfMonth = req.DayOfMonth
	t.MonthOfYear = req.MonthOfYear
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := data.UpdateSystemTaskTemplate(t); err != nil {
		log.Printf("Error updating system task template %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update template: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// DeleteSystemTaskHandler removes a template with its completion history.
// DELETE /api/system-tasks/{id}
func DeleteSystemTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template ID.")
		return
	}

	if err := data.DeleteSystemTaskTemplate(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Template not found.")
			return
		}
		log.Printf("Error deleting system task template %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not delete template: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetDueSystemTasksHandler lists active templates due on the queried date
// (default today), with their completion state. Due status is always
// computed, never stored.
// GET /api/system-tasks/due?date=yyyy-MM-dd&department_id=
func GetDueSystemTasksHandler(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	day := time.Now()
	if dateStr != "" {
		var err error
		day, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date, expected yyyy-MM-dd.")
			return
		}
	}
	dayKey := day.Format("2006-01-02")

	departmentID, err := queryInt64(r, "department_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid department_id.")
		return
	}

	templates, err := data.GetSystemTaskTemplates(departmentID, true)
	if err != nil {
		log.Printf("Error listing system task templates: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not list templates: "+err.Error())
		return
	}

	completions, err := data.GetSystemTaskCompletionsForDate(dayKey)
	if err != nil {
		log.Printf("Error listing completions for %s: %v", dayKey, err)
		respondError(w, http.StatusInternalServerError, "Could not list completions: "+err.Error())
		return
	}

	due := []models.DueSystemTask{}
	for i := range templates {
		t := templates[i]
		if !t.ScheduleTemplate().IsDue(day) {
			continue
		}
		entry := models.DueSystemTask{
			Template:     t,
			ResolvedDate: dayKey,
		}
		if c, ok := completions[t.ID]; ok {
			entry.IsCompleted = true
			entry.CompletedBy = &c.CompletedBy
		}
		due = append(due, entry)
	}

	respondJSON(w, http.StatusOK, due)
}

// GetSystemTaskOccurrencesHandler returns the upcoming occurrence dates of
// one template, for "next occurrences" views.
// GET /api/system-tasks/{id}/occurrences?from=yyyy-MM-dd&count=
func GetSystemTaskOccurrencesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template ID.")
		return
	}

	t, err := data.GetSystemTaskTemplateByID(id)
	if err != nil {
		log.Printf("Error fetching system task template %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch template: "+err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Template not found.")
		return
	}

	from := time.Now()
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid from date, expected yyyy-MM-dd.")
			return
		}
	}
	count := 5
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		count, err = strconv.Atoi(countStr)
		if err != nil || count < 1 || count > 50 {
			respondError(w, http.StatusBadRequest, "Invalid count, expected 1..50.")
			return
		}
	}

	occurrences := t.ScheduleTemplate().Occurrences(from, count)
	dates := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		dates = append(dates, occ.Format("2006-01-02"))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"template_id": id, "occurrences": dates})
}

// CompleteSystemTaskHandler marks a template's occurrence done for a date.
// POST /api/system-tasks/{id}/complete
func CompleteSystemTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Could not read user ID from token.")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template ID.")
		return
	}

	t, err := data.GetSystemTaskTemplateByID(id)
	if err != nil {
		log.Printf("Error fetching system task template %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch template: "+err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Template not found.")
		return
	}

	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected yyyy-MM-dd.")
		return
	}

	c := &models.SystemTaskCompletion{
		TemplateID:  id,
		Date:        req.Date,
		CompletedBy: userID,
	}
	if _, err := data.CreateSystemTaskCompletion(c); err != nil {
		log.Printf("Error completing system task %d for %s: %v", id, req.Date, err)
		respondError(w, http.StatusInternalServerError, "Could not mark task done: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// UncompleteSystemTaskHandler unmarks an occurrence (checkbox rollback).
// DELETE /api/system-tasks/{id}/complete?date=yyyy-MM-dd
func UncompleteSystemTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template ID.")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected yyyy-MM-dd.")
		return
	}

	if err := data.DeleteSystemTaskCompletion(id, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "No completion recorded for this date.")
			return
		}
		log.Printf("Error removing completion of template %d for %s: %v", id, date, err)
		respondError(w, http.StatusInternalServerError, "Could not unmark task: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetSystemTaskHistoryHandler returns the completion history of a template.
// GET /api/system-tasks/{id}/history
func GetSystemTaskHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template ID.")
		return
	}

	completions, err := data.GetSystemTaskCompletionsForTemplate(id)
	if err != nil {
		log.Printf("Error listing completions for template %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not list completions: "+err.Error())
		return
	}
	if completions == nil {
		completions = []models.SystemTaskCompletion{}
	}
	respondJSON(w, http.StatusOK, completions)
}

// ExportSystemTasksHandler streams all templates as a CSV download.
// GET /api/system-tasks/export
func ExportSystemTasksHandler(w http.ResponseWriter, r *http.Request) {
	templates, err := data.GetSystemTaskTemplates(nil, false)
	if err != nil {
		log.Printf("Error listing system task templates for export: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not export templates: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="system_tasks.csv"`)
	if err := WriteSystemTasksCSV(w, templates); err != nil {
		log.Printf("Error writing system task CSV: %v", err)
	}
}

// ImportSystemTasksHandler imports templates from a CSV upload. Valid rows
// are inserted in one transaction; rejected rows are reported by line.
// POST /api/system-tasks/import
func ImportSystemTasksHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Could not read user ID from token.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	templates, rowErrs, err := ParseSystemTasksCSV(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid CSV: "+err.Error())
		return
	}
	defer r.Body.Close()
	if rowErrs == nil {
		rowErrs = []CSVRowError{}
	}

	for i := range templates {
		dep, err := data.GetDepartmentByID(templates[i].DepartmentID)
		if err != nil || dep == nil {
			respondError(w, http.StatusBadRequest,
				fmt.Sprintf("Unknown department %d in import.", templates[i].DepartmentID))
			return
		}
		templates[i].CreatedBy = userID
	}

	tx, err := data.GetDB().Beginx()
	if err != nil {
		log.Printf("Error starting import transaction: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not import templates.")
		return
	}
	imported := make([]int64, 0, len(templates))
	for i := range templates {
		id, err := data.CreateSystemTaskTemplateWithTx(tx, &templates[i])
		if err != nil {
			tx.Rollback()
			log.Printf("Error importing system task template %q: %v", templates[i].Title, err)
			respondError(w, http.StatusInternalServerError, "Could not import templates: "+err.Error())
			return
		}
		imported = append(imported, id)
	}
	if err := tx.Commit(); err != nil {
		log.Printf("Error committing import transaction: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not import templates.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"imported": len(imported),
		"ids":      imported,
		"rejected": rowErrs,
	})
}
