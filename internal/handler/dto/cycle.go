package dto

import (
	"github.com/hormonya/hormonya/internal/calendar"
	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/model"
)

// SaveCycleRequest is the body of POST /api/save-cycle.
type SaveCycleRequest struct {
	Email     string `json:"email"`
	StartDate string `json:"startDate"`
}

// SaveCycleResponse acknowledges a saved cycle with the prediction it implies.
type SaveCycleResponse struct {
	Success        bool       `json:"success"`
	Message        string     `json:"message"`
	StartDate      cycle.Date `json:"startDate"`
	PredictedStart cycle.Date `json:"predictedStart"`
}

// CycleResponse is one cycle row. Only the start date is exposed.
type CycleResponse struct {
	StartDate cycle.Date `json:"start_date"`
}

// CycleListResponse is the body of GET /api/get-cycles.
type CycleListResponse struct {
	Success bool            `json:"success"`
	Cycles  []CycleResponse `json:"cycles"`
}

// ToCycleListResponse converts cycles, preserving order.
func ToCycleListResponse(cycles []*model.Cycle) *CycleListResponse {
	resp := &CycleListResponse{
		Success: true,
		Cycles:  make([]CycleResponse, 0, len(cycles)),
	}
	for _, c := range cycles {
		resp.Cycles = append(resp.Cycles, CycleResponse{StartDate: c.StartDate})
	}
	return resp
}

// PredictionResponse is the body of GET /api/get-prediction.
type PredictionResponse struct {
	Success bool `json:"success"`
	cycle.Prediction
}

// CalendarResponse is the body of GET /api/calendar.
type CalendarResponse struct {
	Success   bool               `json:"success"`
	Title     string             `json:"title"`
	Year      int                `json:"year"`
	Month     int                `json:"month"`
	Selected  *cycle.Date        `json:"selected"`
	Predicted *cycle.Date        `json:"predicted"`
	Cells     []calendar.DayCell `json:"cells"`
}
