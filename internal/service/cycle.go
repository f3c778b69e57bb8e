package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hormonya/hormonya/internal/calendar"
	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/metrics"
	"github.com/hormonya/hormonya/internal/model"
)

// CycleService records cycle starts and derives predictions from them.
type CycleService struct {
	users   *UserService
	cycles  CycleStore
	metrics metrics.Recorder
	today   func() cycle.Date
}

// NewCycleService creates a new CycleService.
func NewCycleService(users *UserService, cycles CycleStore, recorder metrics.Recorder) *CycleService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CycleService{
		users:   users,
		cycles:  cycles,
		metrics: recorder,
		today:   cycle.Today,
	}
}

// SaveCycleResult is a stored record with the prediction it implies.
type SaveCycleResult struct {
	Cycle      *model.Cycle
	Prediction cycle.Prediction
}

// SaveCycle appends a cycle start for the user with the given email.
func (s *CycleService) SaveCycle(ctx context.Context, email, startDate string) (*SaveCycleResult, error) {
	email = NormalizeEmail(email)
	startDate = strings.TrimSpace(startDate)
	if email == "" || startDate == "" {
		return nil, ErrMissingData
	}

	start, err := cycle.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	rec, err := s.cycles.CreateCycle(ctx, user.ID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to save cycle: %w", err)
	}

	s.metrics.IncCycleSaved()
	return &SaveCycleResult{Cycle: rec, Prediction: cycle.Predict(start)}, nil
}

// ListCycles returns the user's cycles, most recent start first.
func (s *CycleService) ListCycles(ctx context.Context, email string) ([]*model.Cycle, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	cycles, err := s.cycles.ListCycles(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	return cycles, nil
}

// Prediction derives the next cycle start from the user's most recent record.
func (s *CycleService) Prediction(ctx context.Context, email string) (cycle.Prediction, error) {
	cycles, err := s.ListCycles(ctx, email)
	if err != nil {
		return cycle.Prediction{}, err
	}

	latest, ok := cycle.Latest(model.StartDates(cycles))
	if !ok {
		return cycle.Prediction{}, ErrNoCycles
	}
	return cycle.Predict(latest), nil
}

// CalendarView is one rendered month.
type CalendarView struct {
	Title     string
	Year      int
	Month     time.Month
	Cells     []calendar.DayCell
	Selected  *cycle.Date
	Predicted *cycle.Date
}

// Calendar renders a month. When email is set, the user's most recent cycle
// start is marked selected and its prediction marked predicted.
func (s *CycleService) Calendar(ctx context.Context, year int, month time.Month, email string) (*CalendarView, error) {
	if month < time.January || month > time.December || year < 1 || year > 9999 {
		return nil, ErrInvalidMonth
	}

	var selected, predicted *cycle.Date
	if NormalizeEmail(email) != "" {
		p, err := s.Prediction(ctx, email)
		switch {
		case err == nil:
			selected, predicted = &p.LastStart, &p.PredictedStart
		case errors.Is(err, ErrNoCycles):
		default:
			return nil, err
		}
	}

	m := calendar.Month{Year: year, Month: month}
	return &CalendarView{
		Title:     m.Title(),
		Year:      year,
		Month:     month,
		Cells:     calendar.Render(year, month, s.today(), selected, predicted),
		Selected:  selected,
		Predicted: predicted,
	}, nil
}
