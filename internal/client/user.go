package client

import (
	"context"

	"github.com/hormonya/hormonya/internal/handler/dto"
	"github.com/hormonya/hormonya/internal/model"
)

// LoginResult is the outcome of a login-by-email call.
type LoginResult struct {
	IsNewUser bool
	User      *model.User
	Message   string
	Token     string
}

// loginResponse accepts both the new-user and existing-user shapes.
type loginResponse struct {
	Success   bool              `json:"success"`
	IsNewUser bool              `json:"isNewUser"`
	UserID    int64             `json:"userId"`
	Email     string            `json:"email"`
	User      *dto.UserResponse `json:"user"`
	Message   string            `json:"message"`
	Token     string            `json:"token"`
}

// Login calls POST /api/login-by-email. An unknown email creates the user.
func (c *Client) Login(ctx context.Context, email string) (*LoginResult, error) {
	var resp loginResponse
	if err := c.postJSON(ctx, "/api/login-by-email", dto.LoginRequest{Email: email}, &resp); err != nil {
		return nil, err
	}

	result := &LoginResult{
		IsNewUser: resp.IsNewUser,
		Message:   resp.Message,
		Token:     resp.Token,
	}
	if resp.User != nil {
		result.User = toModelUser(resp.User)
	} else {
		result.User = &model.User{ID: resp.UserID, Email: resp.Email}
	}
	return result, nil
}

// SaveProfile calls POST /api/save-profile.
func (c *Client) SaveProfile(ctx context.Context, email string, p model.Profile) error {
	req := dto.SaveProfileRequest{
		Email:  email,
		Name:   p.Name,
		Age:    dto.OptionalInt{Value: p.Age},
		Gender: p.Gender,
		Height: dto.OptionalFloat{Value: p.Height},
		Weight: dto.OptionalFloat{Value: p.Weight},
		BMI:    dto.OptionalFloat{Value: p.BMI},
	}
	return c.postJSON(ctx, "/api/save-profile", req, nil)
}

// Session calls GET /api/session with the client's token.
func (c *Client) Session(ctx context.Context) (*model.User, error) {
	var resp dto.SessionResponse
	if err := c.getJSON(ctx, "/api/session", nil, &resp); err != nil {
		return nil, err
	}
	return toModelUser(resp.User), nil
}

func toModelUser(u *dto.UserResponse) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
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
