package dto

import (
	"strings"

	"github.com/hormonya/hormonya/internal/model"
)

// LoginRequest is the body of POST /api/login-by-email.
type LoginRequest struct {
	Email string `json:"email"`
}

// NewUserLoginResponse answers the first login of an email.
type NewUserLoginResponse struct {
	Success   bool   `json:"success"`
	IsNewUser bool   `json:"isNewUser"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Token     string `json:"token,omitempty"`
}

// ExistingUserLoginResponse answers a login of a known email.
type ExistingUserLoginResponse struct {
	Success   bool          `json:"success"`
	IsNewUser bool          `json:"isNewUser"`
	User      *UserResponse `json:"user"`
	Message   string        `json:"message"`
	Token     string        `json:"token,omitempty"`
}

// SessionResponse is the body of GET /api/session.
type SessionResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
}

// UserResponse is a user row as the client sees it.
type UserResponse struct {
	ID     int64    `json:"id"`
	Email  string   `json:"email"`
	Name   *string  `json:"name"`
	Age    *int     `json:"age"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
	BMI    *float64 `json:"bmi"`
}

// ToUserResponse converts a User model to its DTO.
func ToUserResponse(u *model.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Age:    u.Age,
		Gender: u.Gender,
		Height: u.Height,
		Weight: u.Weight,
		BMI:    u.BMI,
	}
}

// SaveProfileRequest is the body of POST /api/save-profile.
type SaveProfileRequest struct {
	Email  string        `json:"email"`
	Name   *string       `json:"name"`
	Age    OptionalInt   `json:"age"`
	Gender *string       `json:"gender"`
	Height OptionalFloat `json:"height"`
	Weight OptionalFloat `json:"weight"`
	BMI    OptionalFloat `json:"bmi"`
}

// Profile converts the request to the model. Blank strings are absent.
func (r *SaveProfileRequest) Profile() model.Profile {
	return model.Profile{
		Name:   blankToNil(r.Name),
		Age:    r.Age.Value,
		Gender: blankToNil(r.Gender),
		Height: r.Height.Value,
		Weight: r.Weight.Value,
		BMI:    r.BMI.Value,
	}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
