package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/session"
)

// ErrNotSignedIn is returned when tracking is attempted without a session.
var ErrNotSignedIn = errors.New("please sign in first to track your cycle")

// CycleAPI is the server surface the tracker uses. *client.Client implements it.
type CycleAPI interface {
	SaveCycle(ctx context.Context, email string, start cycle.Date) error
	GetCycles(ctx context.Context, email string) ([]cycle.Date, error)
}

// Tracker combines the calendar state with the login wall and the cycle API.
type Tracker struct {
	gate *session.Gate
	api  CycleAPI

	mu    sync.Mutex
	state *State
}

// NewTracker creates a Tracker over state.
func NewTracker(state *State, gate *session.Gate, api CycleAPI) *Tracker {
	return &Tracker{state: state, gate: gate, api: api}
}

// PickDate selects d, saves it and updates the prediction. When the save
// fails the previous selection and prediction are restored.
func (t *Tracker) PickDate(ctx context.Context, d cycle.Date) (View, error) {
	email, err := t.signedInEmail()
	if err != nil {
		return View{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	saved := t.state.snapshot()
	t.state.PickDate(d)

	if err := t.api.SaveCycle(ctx, email, d); err != nil {
		t.state.restore(saved)
		return t.state.Render(), fmt.Errorf("save cycle: %w", err)
	}
	return t.state.Render(), nil
}

// Sync loads the user's cycles from the server; the most recent one
// becomes the selection.
func (t *Tracker) Sync(ctx context.Context) (View, error) {
	email, err := t.signedInEmail()
	if err != nil {
		return View{}, err
	}

	dates, err := t.api.GetCycles(ctx, email)
	if err != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.state.Render(), fmt.Errorf("load cycles: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.LoadHistory(dates)
	return t.state.Render(), nil
}

// Do runs fn against the state under the tracker's lock, for navigation.
func (t *Tracker) Do(fn func(s *State)) View {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.state)
	return t.state.Render()
}

func (t *Tracker) signedInEmail() (string, error) {
	if t.gate.State() != session.LoggedIn {
		return "", ErrNotSignedIn
	}
	id := t.gate.Identity()
	if id == nil || id.Email == "" {
		return "", ErrNotSignedIn
	}
	return id.Email, nil
}
