package data

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/elsaferati/Primex-TaskManager-sub003/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a bcrypt hash for the password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateUser inserts a new user. The PasswordHash field holds the plain
// password on input and is hashed here.
func CreateUser(user *models.User) (int64, error) {
	hashedPassword, err := HashPassword(user.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	if user.Role == "" {
		user.Role = models.RoleStaff
	}

	now := time.Now()
	query := `INSERT INTO Users (Email, DisplayName, PhotoUrl, Role, DepartmentId, PasswordHash, CreatedAt, UpdatedAt)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := DB.Exec(query, user.Email, user.DisplayName, user.PhotoUrl, user.Role, user.DepartmentID, hashedPassword, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	return id, nil
}

// GetUserByEmail fetches a user by email. Returns (nil, nil) when absent.
func GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT Id, Email, DisplayName, PhotoUrl, Role, DepartmentId, PasswordHash, CreatedAt, UpdatedAt
	          FROM Users WHERE Email = ?`
	err := DB.Get(user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return user, nil
}

// GetUserByID fetches a user by ID. Returns (nil, nil) when absent.
func GetUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT Id, Email, DisplayName, PhotoUrl, Role, DepartmentId, PasswordHash, CreatedAt, UpdatedAt
	          FROM Users WHERE Id = ?`
	err := DB.Get(user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return user, nil
}

// GetAllUsers lists every account, newest first.
func GetAllUsers() ([]models.User, error) {
	var users []models.User
	query := `SELECT Id, Email, DisplayName, PhotoUrl, Role, DepartmentId, PasswordHash, CreatedAt, UpdatedAt
	          FROM Users ORDER BY Id DESC`
	if err := DB.Select(&users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUserProfile updates the display name and photo URL of a user.
func UpdateUserProfile(userID int64, displayName string, photoUrl string) error {
	now := time.Now()
	query := `UPDATE Users SET DisplayName = ?, PhotoUrl = ?, UpdatedAt = ?
	          WHERE Id = ?`
	result, err := DB.Exec(query, displayName, photoUrl, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update user profile for ID %d: %w", userID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for user profile update ID %d: %w", userID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no user found with ID %d to update profile", userID)
	}
	return nil
}

// UpdateUserRole changes the role of a user.
func UpdateUserRole(userID int64, role string) error {
	now := time.Now()
	result, err := DB.Exec(`UPDATE Users SET Role = ?, UpdatedAt = ? WHERE Id = ?`, role, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update role for user ID %d: %w", userID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
