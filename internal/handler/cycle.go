package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/handler/dto"
	"github.com/hormonya/hormonya/internal/service"
)

// CycleHandler handles cycle tracking endpoints.
type CycleHandler struct {
	svc    *service.CycleService
	logger *slog.Logger
	today  func() cycle.Date
}

// NewCycleHandler creates a new CycleHandler.
func NewCycleHandler(svc *service.CycleService, logger *slog.Logger) *CycleHandler {
	return &CycleHandler{
		svc:    svc,
		logger: logger,
		today:  cycle.Today,
	}
}

// SaveCycle handles POST /api/save-cycle.
func (h *CycleHandler) SaveCycle(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveCycleRequest
	if tooLarge, err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, tooLarge)
		return
	}

	result, err := h.svc.SaveCycle(r.Context(), requestEmail(r, req.Email), req.StartDate)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("cycle_saved",
		"user_id", result.Cycle.UserID,
		"cycle_id", result.Cycle.ID,
	)

	writeJSON(w, http.StatusOK, dto.SaveCycleResponse{
		Success:        true,
		Message:        "Cycle saved!",
		StartDate:      result.Prediction.LastStart,
		PredictedStart: result.Prediction.PredictedStart,
	})
}

// GetCycles handles GET /api/get-cycles?email=.
func (h *CycleHandler) GetCycles(w http.ResponseWriter, r *http.Request) {
	email := requestEmail(r, r.URL.Query().Get("email"))
	if service.NormalizeEmail(email) == "" {
		writeMessage(w, http.StatusBadRequest, "Email required.")
		return
	}

	cycles, err := h.svc.ListCycles(r.Context(), email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCycleListResponse(cycles))
}

// GetPrediction handles GET /api/get-prediction?email=.
func (h *CycleHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	email := requestEmail(r, r.URL.Query().Get("email"))
	if service.NormalizeEmail(email) == "" {
		writeMessage(w, http.StatusBadRequest, "Email required.")
		return
	}

	prediction, err := h.svc.Prediction(r.Context(), email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PredictionResponse{
		Success:    true,
		Prediction: prediction,
	})
}

// Calendar handles GET /api/calendar?year=&month=&email=.
// year and month default to the current month; email is optional.
func (h *CycleHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	today := h.today()

	year, err := intParam(q.Get("year"), today.Year)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid year.")
		return
	}
	month, err := intParam(q.Get("month"), int(today.Month))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid month.")
		return
	}

	view, err := h.svc.Calendar(r.Context(), year, time.Month(month), requestEmail(r, q.Get("email")))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CalendarResponse{
		Success:   true,
		Title:     view.Title,
		Year:      view.Year,
		Month:     int(view.Month),
		Selected:  view.Selected,
		Predicted: view.Predicted,
		Cells:     view.Cells,
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *CycleHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingData):
		writeMessage(w, http.StatusBadRequest, "Missing data.")
	case errors.Is(err, service.ErrEmailRequired):
		writeMessage(w, http.StatusBadRequest, "Email required.")
	case errors.Is(err, service.ErrInvalidDate):
		writeMessage(w, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD.")
	case errors.Is(err, service.ErrInvalidMonth):
		writeMessage(w, http.StatusBadRequest, "Invalid month.")
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found.")
	case errors.Is(err, service.ErrNoCycles):
		writeMessage(w, http.StatusNotFound, "No cycles recorded.")
	default:
		writeInternalError(w, h.logger, "internal_error", err)
	}
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
