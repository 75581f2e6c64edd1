package user

import "strings"

// Role is the application role stored in the directory's app metadata.
type Role string

const (
	RoleStaff   Role = "staff"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole reports whether raw names one of the recognized roles.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(raw)) {
	case RoleStaff:
		return RoleStaff, true
	case RoleTeacher:
		return RoleTeacher, true
	case RoleStudent:
		return RoleStudent, true
	}
	return "", false
}

// RoleNames is the display list used in validation messages.
func RoleNames() string {
	return "staff, teacher, student"
}

// DirectoryUser is a user record as the external directory returns it.
// The directory owns these records; nothing here is cached past a request.
type DirectoryUser struct {
	ID            string `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	Role          Role   `json:"role"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// CreateUser is the normalized payload sent to the directory for one user.
type CreateUser struct {
	Email      string
	Password   string
	Role       Role
	GivenName  string
	FamilyName string
	Name       string
}

// UpdateUser carries the optional fields of a partial update. Nil means
// "leave unchanged".
type UpdateUser struct {
	GivenName  *string
	FamilyName *string
	Name       *string
	Password   *string
	Role       *Role
}
