// Package domain holds the transfer objects exchanged with the proposals backend
package domain

import "fmt"

// Role identifies which side of the matching platform a user belongs to
type Role string

const (
	RoleStudent   Role = "alumno"
	RoleProfessor Role = "profesor"
)

// ParseRole converts a stored user type into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleProfessor:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown user type %q", s)
	}
}

// Label returns the human-readable name of the role
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Alumno"
	case RoleProfessor:
		return "Profesor"
	default:
		return string(r)
	}
}

// Credentials are used once for login and never retained
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the client-held authentication state for the current user
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserType     Role   `json:"userType"`
	UserEmail    string `json:"userEmail"`
	IsFirstLogin bool   `json:"isFirstLogin"`
	IsAdmin      bool   `json:"isAdmin"`
}

// AuthResponse is the token payload returned by login, registration and
// password-change endpoints
type AuthResponse struct {
	Refresh      string `json:"refresh,omitempty"`
	Access       string `json:"access,omitempty"`
	UserType     string `json:"user_type,omitempty"`
	UserEmail    string `json:"user_email,omitempty"`
	FirstLogin   bool   `json:"primer_inicio,omitempty"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

// HasTokens reports whether the response carries an access token
func (r *AuthResponse) HasTokens() bool {
	return r != nil && r.Access != ""
}

// Session converts the token payload into a Session
func (r *AuthResponse) Session() Session {
	return Session{
		AccessToken:  r.Access,
		RefreshToken: r.Refresh,
		UserType:     Role(r.UserType),
		UserEmail:    r.UserEmail,
		IsFirstLogin: r.FirstLogin,
		IsAdmin:      r.IsAdmin,
	}
}

// RegistrationInput holds the flat registration form fields
type RegistrationInput struct {
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	ConfirmPassword  string   `json:"confirmPassword"`
	Name             string   `json:"nombre"`
	LastNamePaternal string   `json:"apellido_paterno"`
	LastNameMaternal string   `json:"apellido_materno"`
	StudentID        string   `json:"boleta"`
	Career           string   `json:"carrera"`
	StudyPlan        string   `json:"plan_estudios"`
	AreaIDs          []int64  `json:"areas_ids"`
	CustomAreas      []string `json:"areas_custom"`
}

// VerificationResult is the in-band outcome of an email verification
type VerificationResult struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	Verified   bool   `json:"verified,omitempty"`
}

// PasswordChange is the body of the self-service password change
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// PasswordPair is used by the reset and professor first-login flows
type PasswordPair struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileUpdate patches the knowledge areas or subjects of a profile. A nil
// field is left as is; a pointer to an empty slice clears it.
type ProfileUpdate struct {
	AreaIDs     *[]int64  `json:"areas_ids,omitempty"`
	SubjectIDs  *[]int64  `json:"materias_ids,omitempty"`
	CustomAreas *[]string `json:"areas_custom,omitempty"`
}

// IsEmpty reports whether the update touches nothing
func (u ProfileUpdate) IsEmpty() bool {
	return u.AreaIDs == nil && u.SubjectIDs == nil && u.CustomAreas == nil
}

// Profile is the profile document of the current user. Its shape differs
// between students and professors, so it is kept generic.
type Profile map[string]any
