package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hormonya/hormonya/internal/auth"
	"github.com/hormonya/hormonya/internal/handler/dto"
	"github.com/hormonya/hormonya/internal/middleware"
	"github.com/hormonya/hormonya/internal/model"
	"github.com/hormonya/hormonya/internal/service"
)

// TokenIssuer mints session tokens. *auth.Issuer implements it.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

// UserHandler handles the login wall and profile endpoints.
type UserHandler struct {
	users  *service.UserService
	tokens TokenIssuer
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler. tokens may be nil, in which case
// login responses carry no session token.
func NewUserHandler(users *service.UserService, tokens TokenIssuer, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login handles POST /api/login-by-email and its alias POST /api/login-email.
// An unknown email creates the user.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if tooLarge, err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, tooLarge)
		return
	}
	if err := middleware.ValidateEmail(req.Email); err != nil {
		writeMessage(w, http.StatusBadRequest, "Please enter a valid email address.")
		return
	}

	result, err := h.users.LoginByEmail(r.Context(), req.Email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	token, err := h.issueToken(result.User)
	if err != nil {
		writeInternalError(w, h.logger, "session_token_failed", err)
		return
	}

	if result.IsNew {
		h.logger.Info("user_created", "user_id", result.User.ID)
		writeJSON(w, http.StatusOK, dto.NewUserLoginResponse{
			Success:   true,
			IsNewUser: true,
			UserID:    result.User.ID,
			Email:     result.User.Email,
			Message:   "New account created!",
			Token:     token,
		})
		return
	}

	h.logger.Info("user_login", "user_id", result.User.ID)
	writeJSON(w, http.StatusOK, dto.ExistingUserLoginResponse{
		Success:   true,
		IsNewUser: false,
		User:      dto.ToUserResponse(result.User),
		Message:   "Login successful!",
		Token:     token,
	})
}

// SaveProfile handles POST /api/save-profile.
func (h *UserHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveProfileRequest
	if tooLarge, err := decodeJSON(r, &req); err != nil {
		var numErr *dto.NumberError
		if errors.As(err, &numErr) {
			writeMessage(w, http.StatusBadRequest, "Invalid profile: "+numErr.Error()+".")
			return
		}
		writeDecodeError(w, tooLarge)
		return
	}

	profile := req.Profile()
	if err := middleware.ValidateProfile(profile.Name, profile.Age); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid profile: "+err.Error()+".")
		return
	}

	user, err := h.users.SaveProfile(r.Context(), requestEmail(r, req.Email), profile)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("profile_saved", "user_id", user.ID)
	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Profile updated successfully!",
	})
}

// Session handles GET /api/session. It must be mounted behind
// middleware.RequireSession.
func (h *UserHandler) Session(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByEmail(r.Context(), auth.EmailFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SessionResponse{
		Success: true,
		User:    dto.ToUserResponse(user),
	})
}

func (h *UserHandler) issueToken(user *model.User) (string, error) {
	if h.tokens == nil {
		return "", nil
	}
	return h.tokens.Issue(user)
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailRequired):
		writeMessage(w, http.StatusBadRequest, "Email is required.")
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found.")
	case errors.Is(err, service.ErrBadMeasure):
		writeMessage(w, http.StatusBadRequest, "Invalid profile: "+err.Error()+".")
	default:
		writeInternalError(w, h.logger, "internal_error", err)
	}
}

// requestEmail returns the email named by the request, falling back to the
// session's email when the request names none.
func requestEmail(r *http.Request, explicit string) string {
	if service.NormalizeEmail(explicit) != "" {
		return explicit
	}
	return auth.EmailFromContext(r.Context())
}
