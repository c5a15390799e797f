package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/elsaferati/Primex-TaskManager-sub003/auth"
	"github.com/elsaferati/Primex-TaskManager-sub003/data"
	"github.com/elsaferati/Primex-TaskManager-sub003/models"
)

// RegisterHandler handles new account registrations.
// POST /api/auth/register
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.DisplayName) == "" {
		respondError(w, http.StatusBadRequest, "Email, password and display name must not be empty.")
		return
	}

	existingUser, err := data.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("Error checking email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Server error while checking email.")
		return
	}
	if existingUser != nil {
		respondError(w, http.StatusConflict, "A user with this email already exists.")
		return
	}

	if req.DepartmentID != nil {
		dep, err := data.GetDepartmentByID(*req.DepartmentID)
		if err != nil || dep == nil {
			respondError(w, http.StatusBadRequest, "Unknown department.")
			return
		}
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: req.Password, // hashed inside CreateUser
		DisplayName:  req.DisplayName,
		Role:         models.RoleStaff,
		DepartmentID: req.DepartmentID,
	}

	userID, err := data.CreateUser(user)
	if err != nil {
		log.Printf("Error creating user %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Could not create user: "+err.Error())
		return
	}
	user.ID = userID

	tokenString, _, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("Error generating token for user %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "User created, but the access token could not be generated.")
		return
	}

	respondJSON(w, http.StatusCreated, models.AuthResponse{
		Token: tokenString,
		User:  user.PublicInfo(),
	})
}

// LoginHandler handles logins.
// POST /api/auth/login
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		respondError(w, http.StatusBadRequest, "Email and password must not be empty.")
		return
	}

	user, err := data.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("Error looking up user by email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Server error while looking up user.")
		return
	}

	if user == nil || !data.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Wrong email or password.")
		return
	}

	tokenString, _, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("Error generating token for user %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "Could not generate access token.")
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{
		Token: tokenString,
		User:  user.PublicInfo(),
	})
}

// UpdateProfileHandler lets the authenticated user change display name and
// photo.
// PUT /api/auth/profile
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Could not read user ID from token.")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := data.UpdateUserProfile(userID, req.DisplayName, req.PhotoUrl); err != nil {
		log.Printf("Error updating profile for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Could not update user profile: "+err.Error())
		return
	}

	updatedUser, err := data.GetUserByID(userID)
	if err != nil || updatedUser == nil {
		log.Printf("Error fetching updated user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Could not fetch updated user data.")
		return
	}

	respondJSON(w, http.StatusOK, updatedUser.PublicInfo())
}
