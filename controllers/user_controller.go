package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/elsaferati/Primex-TaskManager-sub003/data"
	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

// GetUsersHandler lists all accounts in their public shape. Open to any
// authenticated user so assignee pickers can be populated.
// GET /api/users
func GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := data.GetAllUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not list users: "+err.Error())
		return
	}

	infos := make([]models.UserPublicInfo, 0, len(users))
	for i := range users {
		infos = append(infos, users[i].PublicInfo())
	}
	respondJSON(w, http.StatusOK, infos)
}

// UpdateUserRoleHandler changes the role of an account (admin only).
// PUT /api/users/{id}/role
func UpdateUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if !models.ValidRole(req.Role) {
		respondError(w, http.StatusBadRequest, "Unknown role: "+req.Role)
		return
	}

	if err := data.UpdateUserRole(id, req.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("Error updating role for user %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update role: "+err.Error())
		return
	}

	user, err := data.GetUserByID(id)
	if err != nil || user == nil {
		respondError(w, http.StatusInternalServerError, "Could not fetch updated user.")
		return
	}
	respondJSON(w, http.StatusOK, user.PublicInfo())
}
