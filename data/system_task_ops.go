package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"

	"github.com/jmoiron/sqlx"
)

// CreateSystemTaskTemplate inserts a new recurring task template.
func CreateSystemTaskTemplate(t *models.SystemTaskTemplate) (int64, error) {
	if err := t.UpdateJsonProperties(); err != nil {
		return 0, fmt.Errorf("CreateSystemTaskTemplate: failed to serialize days of week: %w", err)
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `INSERT INTO SystemTaskTemplates
	          (DepartmentId, Title, Description, Frequency, DaysOfWeekJson, DayOfWeek, DayOfMonth, MonthOfYear, IsActive, CreatedBy, CreatedAt, UpdatedAt)
	          VALUES (:DepartmentId, :Title, :Description, :Frequency, :DaysOfWeekJson, :DayOfWeek, :DayOfMonth, :MonthOfYear, :IsActive, :CreatedBy, :CreatedAt, :UpdatedAt)`
	result, err := DB.NamedExec(query, t)
	if err != nil {
		return 0, fmt.Errorf("CreateSystemTaskTemplate: failed to insert: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateSystemTaskTemplate: failed to get LastInsertId: %w", err)
	}
	log.Printf("Created system task template %q with ID %d for department %d", t.Title, newID, t.DepartmentID)
	return newID, nil
}

// GetSystemTaskTemplateByID fetches a template by ID. Returns (nil, nil)
// when absent.
func GetSystemTaskTemplateByID(id int64) (*models.SystemTaskTemplate, error) {
	t := &models.SystemTaskTemplate{}
	query := `SELECT Id, DepartmentId, Title, Description, Frequency, DaysOfWeekJson, DayOfWeek, DayOfMonth, MonthOfYear, IsActive, CreatedBy, CreatedAt, UpdatedAt
	          FROM SystemTaskTemplates WHERE Id = ?`
	err := DB.Get(t, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetSystemTaskTemplateByID: failed to get template ID %d: %w", id, err)
	}
	t.LoadJsonProperties()
	return t, nil
}

// GetSystemTaskTemplates lists templates, optionally filtered by department
// and active flag.
func GetSystemTaskTemplates(departmentID *int64, activeOnly bool) ([]models.SystemTaskTemplate, error) {
	query := `SELECT Id, DepartmentId, Title, Description, Frequency, DaysOfWeekJson, DayOfWeek, DayOfMonth, MonthOfYear, IsActive, CreatedBy, CreatedAt, UpdatedAt
	          FROM SystemTaskTemplates WHERE 1=1`
	args := []interface{}{}
	if departmentID != nil {
		query += ` AND DepartmentId = ?`
		args = append(args, *departmentID)
	}
	if activeOnly {
		query += ` AND IsActive = 1`
	}
	query += ` ORDER BY DepartmentId ASC, Title ASC`

	var templates []models.SystemTaskTemplate
	if err := DB.Select(&templates, query, args...); err != nil {
		return nil, fmt.Errorf("GetSystemTaskTemplates: failed to list templates: %w", err)
	}
	for i := range templates {
		templates[i].LoadJsonProperties()
	}
	return templates, nil
}

// UpdateSystemTaskTemplate updates all editable fields of a template.
func UpdateSystemTaskTemplate(t *models.SystemTaskTemplate) error {
	if err := t.UpdateJsonProperties(); err != nil {
		return fmt.Errorf("UpdateSystemTaskTemplate: failed to serialize days of week: %w", err)
	}
	t.UpdatedAt = time.Now()

	query := `UPDATE SystemTaskTemplates SET
	          DepartmentId = :DepartmentId, Title = :Title, Description = :Description,
	          Frequency = :Frequency, DaysOfWeekJson = :DaysOfWeekJson, DayOfWeek = :DayOfWeek,
	          DayOfMonth = :DayOfMonth, MonthOfYear = :MonthOfYear, IsActive = :IsActive, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := DB.NamedExec(query, t)
	if err != nil {
		return fmt.Errorf("UpdateSystemTaskTemplate: failed to update template ID %d: %w", t.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Updated system task template with ID %d", t.ID)
	return nil
}

// DeleteSystemTaskTemplate removes a template and, via cascade, its
// completion history.
func DeleteSystemTaskTemplate(id int64) error {
	result, err := DB.Exec(`DELETE FROM SystemTaskTemplates WHERE Id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteSystemTaskTemplate: failed to delete template ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Deleted system task template with ID %d", id)
	return nil
}

// CreateSystemTaskTemplateWithTx inserts a template inside a transaction.
// Used by the CSV import so a bad file leaves nothing behind.
func CreateSystemTaskTemplateWithTx(tx *sqlx.Tx, t *models.SystemTaskTemplate) (int64, error) {
	if err := t.UpdateJsonProperties(); err != nil {
		return 0, fmt.Errorf("CreateSystemTaskTemplateWithTx: failed to serialize days of week: %w", err)
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `INSERT INTO SystemTaskTemplates
	          (DepartmentId, Title, Description, Frequency, DaysOfWeekJson, DayOfWeek, DayOfMonth, MonthOfYear, IsActive, CreatedBy, CreatedAt, UpdatedAt)
	          VALUES (:DepartmentId, :Title, :Description, :Frequency, :DaysOfWeekJson, :DayOfWeek, :DayOfMonth, :MonthOfYear, :IsActive, :CreatedBy, :CreatedAt, :UpdatedAt)`
	result, err := tx.NamedExec(query, t)
	if err != nil {
		return 0, fmt.Errorf("CreateSystemTaskTemplateWithTx: failed to insert: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateSystemTaskTemplateWithTx: failed to get LastInsertId: %w", err)
	}
	return newID, nil
}

// --- completions ---

// CreateSystemTaskCompletion marks one occurrence of a template done.
// Marking the same (template, date) twice is a no-op thanks to the unique
// constraint; the existing row is returned unchanged.
func CreateSystemTaskCompletion(c *models.SystemTaskCompletion) (int64, error) {
	c.CompletedAt = time.Now()
	query := `INSERT OR IGNORE INTO SystemTaskCompletions (TemplateId, Date, CompletedBy, CompletedAt)
	          VALUES (:TemplateId, :Date, :CompletedBy, :CompletedAt)`
	result, err := DB.NamedExec(query, c)
	if err != nil {
		return 0, fmt.Errorf("CreateSystemTaskCompletion: failed to insert: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateSystemTaskCompletion: failed to get LastInsertId: %w", err)
	}
	return newID, nil
}

// DeleteSystemTaskCompletion unmarks an occurrence (the client's checkbox
// rollback path).
func DeleteSystemTaskCompletion(templateID int64, date string) error {
	result, err := DB.Exec(`DELETE FROM SystemTaskCompletions WHERE TemplateId = ? AND Date = ?`, templateID, date)
	if err != nil {
		return fmt.Errorf("DeleteSystemTaskCompletion: failed to delete for template %d on %s: %w", templateID, date, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetSystemTaskCompletionsForDate returns the completions of all templates
// on one date, keyed by template ID.
func GetSystemTaskCompletionsForDate(date string) (map[int64]models.SystemTaskCompletion, error) {
	var completions []models.SystemTaskCompletion
	query := `SELECT Id, TemplateId, Date, CompletedBy, CompletedAt
	          FROM SystemTaskCompletions WHERE Date = ?`
	if err := DB.Select(&completions, query, date); err != nil {
		return nil, fmt.Errorf("GetSystemTaskCompletionsForDate: failed to list for %s: %w", date, err)
	}

	byTemplate := make(map[int64]models.SystemTaskCompletion, len(completions))
	for _, c := range completions {
		byTemplate[c.TemplateID] = c
	}
	return byTemplate, nil
}

// GetSystemTaskCompletionsForTemplate returns the completion history of one
// template, newest first.
func GetSystemTaskCompletionsForTemplate(templateID int64) ([]models.SystemTaskCompletion, error) {
	var completions []models.SystemTaskCompletion
	query := `SELECT Id, TemplateId, Date, CompletedBy, CompletedAt
	          FROM SystemTaskCompletions WHERE TemplateId = ? ORDER BY Date DESC`
	if err := DB.Select(&completions, query, templateID); err != nil {
		return nil, fmt.Errorf("GetSystemTaskCompletionsForTemplate: failed to list for template %d: %w", templateID, err)
	}
	return completions, nil
}

// DeleteOrphanedCompletions removes completion rows whose template is gone.
// Foreign keys normally prevent these; this covers databases created before
// foreign key enforcement was switched on.
func DeleteOrphanedCompletions() (int64, error) {
	result, err := DB.Exec(`DELETE FROM SystemTaskCompletions
	          WHERE TemplateId NOT IN (SELECT Id FROM SystemTaskTemplates)`)
	if err != nil {
		return 0, fmt.Errorf("DeleteOrphanedCompletions: %w", err)
	}
	removed, _ := result.RowsAffected()
	if removed > 0 {
		log.Printf("Removed %d orphaned system task completions", removed)
	}
	return removed, nil
}
