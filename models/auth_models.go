package models

// RegisterRequest carries the data for a new account registration.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	DisplayName  string `json:"displayName"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPublicInfo is the user shape returned by the API.
type UserPublicInfo struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhotoUrl     string `json:"photoUrl"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
}

// AuthResponse is returned after a successful registration or login.
type AuthResponse struct {
	Token string         `json:"token"`
	User  UserPublicInfo `json:"user"`
}

// UpdateProfileRequest carries profile fields a user may change themselves.
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName"`
	PhotoUrl    string `json:"photoUrl"`
}

// PublicInfo converts a User into its API representation.
func (u *User) PublicInfo() UserPublicInfo {
	return UserPublicInfo{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PhotoUrl:     u.PhotoUrl,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
	}
}
