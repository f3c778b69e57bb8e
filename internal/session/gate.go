// Package session implements the login wall: a small state machine that
// signs a user in by email, collects a profile for new accounts and keeps
// the resulting identity in a local cache.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hormonya/hormonya/internal/client"
	"github.com/hormonya/hormonya/internal/model"
)

// State is a position in the login flow.
type State int

const (
	LoggedOut State = iota
	AwaitingProfile
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged-out"
	case AwaitingProfile:
		return "awaiting-profile"
	case LoggedIn:
		return "logged-in"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Gate errors.
var (
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrEmailRequired     = errors.New("email is required")
)

// API is the part of the server the gate talks to. *client.Client implements it.
type API interface {
	Login(ctx context.Context, email string) (*client.LoginResult, error)
	SaveProfile(ctx context.Context, email string, p model.Profile) error
}

// Gate is the login wall state machine. It is safe for concurrent use.
type Gate struct {
	api   API
	store Store

	mu       sync.Mutex
	state    State
	pending  *Identity
	identity *Identity
}

// NewGate creates a Gate. It starts LoggedIn when the store holds an
// identity and LoggedOut otherwise.
func NewGate(api API, store Store) (*Gate, error) {
	id, err := store.Load()
	if err != nil {
		return nil, err
	}

	g := &Gate{api: api, store: store}
	if id != nil {
		g.state = LoggedIn
		g.identity = id
	}
	return g, nil
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Identity returns a copy of the signed-in identity, or nil.
func (g *Gate) Identity() *Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.identity == nil {
		return nil
	}
	id := *g.identity
	return &id
}

// PendingEmail returns the email awaiting a profile, or "".
func (g *Gate) PendingEmail() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return ""
	}
	return g.pending.Email
}

// SubmitEmail logs in with email. A new account moves the gate to
// AwaitingProfile; an existing one signs in with the stored profile.
func (g *Gate) SubmitEmail(ctx context.Context, email string) (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != LoggedOut {
		return g.state, fmt.Errorf("%w: submit email while %s", ErrInvalidTransition, g.state)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return g.state, ErrEmailRequired
	}

	result, err := g.api.Login(ctx, email)
	if err != nil {
		return g.state, fmt.Errorf("login: %w", err)
	}

	if result.IsNewUser {
		g.pending = &Identity{Email: email, Token: result.Token}
		g.state = AwaitingProfile
		return g.state, nil
	}

	user := result.User
	if user == nil {
		user = &model.User{Email: email}
	}
	if err := g.signIn(IdentityFromUser(user, result.Token)); err != nil {
		return g.state, err
	}
	return g.state, nil
}

// ProfileInput is what the profile step collects.
type ProfileInput struct {
	Name   string
	Age    *int
	Gender string
	Height *float64
	Weight *float64
}

// SubmitProfile saves the profile of a new account and signs in.
// BMI is derived when both height and weight are present.
func (g *Gate) SubmitProfile(ctx context.Context, in ProfileInput) (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != AwaitingProfile {
		return g.state, fmt.Errorf("%w: submit profile while %s", ErrInvalidTransition, g.state)
	}

	p := model.Profile{
		Name:   optionalString(in.Name),
		Age:    in.Age,
		Gender: optionalString(in.Gender),
		Height: in.Height,
		Weight: in.Weight,
	}
	p.DeriveBMI()

	email := g.pending.Email
	if err := g.api.SaveProfile(ctx, email, p); err != nil {
		return g.state, fmt.Errorf("save profile: %w", err)
	}

	id := &Identity{
		Email:  email,
		Name:   p.Name,
		Age:    p.Age,
		Gender: p.Gender,
		Height: p.Height,
		Weight: p.Weight,
		BMI:    p.BMI,
		Token:  g.pending.Token,
	}
	if err := g.signIn(id); err != nil {
		return g.state, err
	}
	g.pending = nil
	return g.state, nil
}

// SignOut clears the cached identity from any state.
func (g *Gate) SignOut() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Clear(); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	g.state = LoggedOut
	g.identity = nil
	g.pending = nil
	return nil
}

// signIn persists id and moves to LoggedIn. The caller holds g.mu.
func (g *Gate) signIn(id *Identity) error {
	if err := g.store.Save(id); err != nil {
		return fmt.Errorf("cache identity: %w", err)
	}
	g.identity = id
	g.state = LoggedIn
	return nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
