package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/elsaferati/Primex-TaskManager-sub003/auth"
	"github.com/elsaferati/Primex-TaskManager-sub003/config"
	"github.com/elsaferati/Primex-TaskManager-sub003/controllers"
	"github.com/elsaferati/Primex-TaskManager-sub003/data"
	"github.com/elsaferati/Primex-TaskManager-sub003/middleware"
	"github.com/elsaferati/Primex-TaskManager-sub003/models"
	"github.com/elsaferati/Primex-TaskManager-sub003/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.JWTSecret != "" {
		auth.SetSigningKey(cfg.JWTSecret)
	}

	if err := data.InitDB(cfg.DatabasePath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	router := mux.NewRouter()

	// Open routes.
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", controllers.RegisterHandler).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", controllers.LoginHandler).Methods(http.MethodPost)

	router.HandleFunc("/api/service/status", controllers.HealthCheck).Methods(http.MethodGet)

	// Attachments are served by direct link, no JWT.
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))))

	// Everything below requires a valid token.
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.JWTMiddleware)

	apiRouter.HandleFunc("/auth/profile", controllers.UpdateProfileHandler).Methods(http.MethodPut)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	manageOnly := middleware.RequireRole(models.RoleManager, models.RoleAdmin)

	// Users.
	apiRouter.HandleFunc("/users", controllers.GetUsersHandler).Methods(http.MethodGet)
	apiRouter.Handle("/users/{id:[0-9]+}/role",
		adminOnly(http.HandlerFunc(controllers.UpdateUserRoleHandler))).Methods(http.MethodPut)

	// Departments. Mutations are restricted to managers and admins.
	apiRouter.HandleFunc("/departments", controllers.GetDepartmentsHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/departments/{id:[0-9]+}", controllers.GetDepartmentHandler).Methods(http.MethodGet)
	apiRouter.Handle("/departments",
		manageOnly(http.HandlerFunc(controllers.CreateDepartmentHandler))).Methods(http.MethodPost)
	apiRouter.Handle("/departments/{id:[0-9]+}",
		manageOnly(http.HandlerFunc(controllers.UpdateDepartmentHandler))).Methods(http.MethodPut)
	apiRouter.Handle("/departments/{id:[0-9]+}",
		adminOnly(http.HandlerFunc(controllers.DeleteDepartmentHandler))).Methods(http.MethodDelete)

	// Projects and their phase board.
	apiRouter.HandleFunc("/projects", controllers.CreateProjectHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/projects", controllers.GetProjectsHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/projects/{id:[0-9]+}", controllers.GetProjectHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/projects/{id:[0-9]+}", controllers.UpdateProjectHandler).Methods(http.MethodPut)
	apiRouter.HandleFunc("/projects/{id:[0-9]+}", controllers.DeleteProjectHandler).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/projects/{id:[0-9]+}/phase", controllers.UpdateProjectPhaseHandler).Methods(http.MethodPut)

	// Tasks.
	apiRouter.HandleFunc("/projects/{id:[0-9]+}/tasks", controllers.CreateTaskHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/projects/{id:[0-9]+}/tasks", controllers.GetTasksHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/projects/{id:[0-9]+}/tasks/reorder", controllers.ReorderTasksHandler).Methods(http.MethodPut)
	apiRouter.HandleFunc("/tasks/{id:[0-9]+}", controllers.GetTaskHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/tasks/{id:[0-9]+}", controllers.UpdateTaskHandler).Methods(http.MethodPut)
	apiRouter.HandleFunc("/tasks/{id:[0-9]+}", controllers.DeleteTaskHandler).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/tasks/{id:[0-9]+}/status", controllers.UpdateTaskStatusHandler).Methods(http.MethodPut)

	// Checklists.
	apiRouter.HandleFunc("/tasks/{id:[0-9]+}/checklist", controllers.CreateChecklistItemHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/tasks/{id:[0-9]+}/checklist", controllers.GetChecklistHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/checklist/{id:[0-9]+}", controllers.UpdateChecklistItemHandler).Methods(http.MethodPut)
	apiRouter.HandleFunc("/checklist/{id:[0-9]+}", controllers.DeleteChecklistItemHandler).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/checklist/{id:[0-9]+}/toggle", controllers.ToggleChecklistItemHandler).Methods(http.MethodPut)

	// Notes.
	apiRouter.HandleFunc("/notes", controllers.CreateNoteHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/notes", controllers.GetNotesHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/notes/{id:[0-9]+}", controllers.GetNoteHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/notes/{id:[0-9]+}", controllers.UpdateNoteHandler).Methods(http.MethodPut)
	apiRouter.HandleFunc("/notes/{id:[0-9]+}", controllers.DeleteNoteHandler).Methods(http.MethodDelete)

	// Meetings.
	apiRouter.HandleFunc("/meetings", controllers.CreateMeetingHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/meetings", controllers.GetMeetingsHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/meetings/{id:[0-9]+}", controllers.GetMeetingHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/meetings/{id:[0-9]+}", controllers.UpdateMeetingHandler).Methods(http.MethodPut)
	apiRouter.HandleFunc("/meetings/{id:[0-9]+}", controllers.DeleteMeetingHandler).Methods(http.MethodDelete)

	// Recurring system tasks. Template management is for managers and admins;
	// reading the due list and ticking occurrences is open to all staff.
	sysRouter := apiRouter.PathPrefix("/system-tasks").Subrouter()
	sysRouter.Handle("",
		manageOnly(http.HandlerFunc(controllers.CreateSystemTaskHandler))).Methods(http.MethodPost)
	sysRouter.HandleFunc("", controllers.GetSystemTasksHandler).Methods(http.MethodGet)
	sysRouter.HandleFunc("/due", controllers.GetDueSystemTasksHandler).Methods(http.MethodGet)
	sysRouter.HandleFunc("/export", controllers.ExportSystemTasksHandler).Methods(http.MethodGet)
	sysRouter.Handle("/import",
		manageOnly(http.HandlerFunc(controllers.ImportSystemTasksHandler))).Methods(http.MethodPost)
	sysRouter.HandleFunc("/{id:[0-9]+}", controllers.GetSystemTaskHandler).Methods(http.MethodGet)
	sysRouter.Handle("/{id:[0-9]+}",
		manageOnly(http.HandlerFunc(controllers.UpdateSystemTaskHandler))).Methods(http.MethodPut)
	sysRouter.Handle("/{id:[0-9]+}",
		manageOnly(http.HandlerFunc(controllers.DeleteSystemTaskHandler))).Methods(http.MethodDelete)
	sysRouter.HandleFunc("/{id:[0-9]+}/occurrences", controllers.GetSystemTaskOccurrencesHandler).Methods(http.MethodGet)
	sysRouter.HandleFunc("/{id:[0-9]+}/complete", controllers.CompleteSystemTaskHandler).Methods(http.MethodPost)
	sysRouter.HandleFunc("/{id:[0-9]+}/complete", controllers.UncompleteSystemTaskHandler).Methods(http.MethodDelete)
	sysRouter.HandleFunc("/{id:[0-9]+}/history", controllers.GetSystemTaskHistoryHandler).Methods(http.MethodGet)

	// File uploads (meeting attachments).
	apiRouter.HandleFunc("/file/upload", controllers.UploadAttachmentHandler).Methods(http.MethodPost)

	// Background jobs.
	jobs := scheduler.New(time.Local)
	if cfg.ReminderEnabled() {
		if _, err := jobs.ScheduleDaily(cfg.ReminderTime, func() {
			scheduler.LogDailyReminders(time.Now())
		}); err != nil {
			log.Fatalf("Failed to schedule daily reminder: %v", err)
		}
	}
	if _, err := jobs.ScheduleInterval(24*time.Hour, scheduler.CleanupOrphanedCompletions); err != nil {
		log.Fatalf("Failed to schedule cleanup job: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	log.Printf("Starting server on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal(err)
	}
}
