package scheduler

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/data"
	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

// LogDailyReminders writes a per-department summary of the recurring tasks
// due today, with their completion state, to the server log.
func LogDailyReminders(now time.Time) {
	dayKey := now.Format("2006-01-02")

	templates, err := data.GetSystemTaskTemplates(nil, true)
	if err != nil {
		log.Printf("Reminder job: could not list templates: %v", err)
		return
	}
	completions, err := data.GetSystemTaskCompletionsForDate(dayKey)
	if err != nil {
		log.Printf("Reminder job: could not list completions: %v", err)
		return
	}
	departments, err := data.GetAllDepartments()
	if err != nil {
		log.Printf("Reminder job: could not list departments: %v", err)
		return
	}
	depNames := make(map[int64]string, len(departments))
	for _, dep := range departments {
		depNames[dep.ID] = dep.Name
	}

	dueByDep := make(map[int64][]models.SystemTaskTemplate)
	for i := range templates {
		t := templates[i]
		if t.ScheduleTemplate().IsDue(now) {
			dueByDep[t.DepartmentID] = append(dueByDep[t.DepartmentID], t)
		}
	}
	if len(dueByDep) == 0 {
		log.Printf("Reminder %s: no recurring tasks due", dayKey)
		return
	}

	for depID, due := range dueByDep {
		var sb strings.Builder
		name := depNames[depID]
		if name == "" {
			name = fmt.Sprintf("department %d", depID)
		}
		sb.WriteString(fmt.Sprintf("Reminder %s, %s: %d task(s) due:", dayKey, name, len(due)))
		for _, t := range due {
			state := "open"
			if _, ok := completions[t.ID]; ok {
				state = "done"
			}
			sb.WriteString(fmt.Sprintf(" [%s] %s;", state, t.Title))
		}
		log.Print(sb.String())
	}
}

// CleanupOrphanedCompletions removes completion rows whose template is gone.
// Cascading deletes cover the normal path; this catches rows left behind by
// databases created before the foreign keys existed.
func CleanupOrphanedCompletions() {
	removed, err := data.DeleteOrphanedCompletions()
	if err != nil {
		log.Printf("Cleanup job: could not delete orphaned completions: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Cleanup job: removed %d orphaned completion(s)", removed)
	}
}
