package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/handler/dto"
)

// SaveCycle calls POST /api/save-cycle.
func (c *Client) SaveCycle(ctx context.Context, email string, start cycle.Date) error {
	req := dto.SaveCycleRequest{Email: email, StartDate: start.String()}
	return c.postJSON(ctx, "/api/save-cycle", req, nil)
}

// GetCycles calls GET /api/get-cycles and returns start dates newest first.
func (c *Client) GetCycles(ctx context.Context, email string) ([]cycle.Date, error) {
	var resp dto.CycleListResponse
	if err := c.getJSON(ctx, "/api/get-cycles", url.Values{"email": {email}}, &resp); err != nil {
		return nil, err
	}
	dates := make([]cycle.Date, len(resp.Cycles))
	for i, rec := range resp.Cycles {
		dates[i] = rec.StartDate
	}
	return dates, nil
}

// GetPrediction calls GET /api/get-prediction.
func (c *Client) GetPrediction(ctx context.Context, email string) (*cycle.Prediction, error) {
	var resp dto.PredictionResponse
	if err := c.getJSON(ctx, "/api/get-prediction", url.Values{"email": {email}}, &resp); err != nil {
		return nil, err
	}
	return &resp.Prediction, nil
}

// Calendar calls GET /api/calendar. email may be empty.
func (c *Client) Calendar(ctx context.Context, year int, month time.Month, email string) (*dto.CalendarResponse, error) {
	q := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(int(month))},
	}
	if email != "" {
		q.Set("email", email)
	}
	var resp dto.CalendarResponse
	if err := c.getJSON(ctx, "/api/calendar", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
