// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/model"
)

// Service errors.
var (
	ErrEmailRequired = errors.New("email is required")
	ErrMissingData   = errors.New("missing data")
	ErrInvalidDate   = errors.New("invalid start date")
	ErrInvalidMonth  = errors.New("invalid calendar month")
	ErrUserNotFound  = errors.New("user not found")
	ErrNoCycles      = errors.New("no cycles recorded")
	ErrBadMeasure    = errors.New("measurements must be finite numbers")
)

// UserStore persists users. Implementations return repository.ErrUserNotFound
// and repository.ErrEmailExists.
type UserStore interface {
	CreateUser(ctx context.Context, email string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, email string, p model.Profile) (*model.User, error)
}

// CycleStore persists cycle start records.
type CycleStore interface {
	CreateCycle(ctx context.Context, userID int64, start cycle.Date) (*model.Cycle, error)
	ListCycles(ctx context.Context, userID int64) ([]*model.Cycle, error)
}

// Store is the full persistence surface used by the services.
type Store interface {
	UserStore
	CycleStore
}

// UserCache is a read-through cache for users keyed by email.
// GetUser returns cache.ErrCacheMiss when the email is not cached.
type UserCache interface {
	GetUser(ctx context.Context, email string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, email string) error
	IsNegativelyCached(ctx context.Context, email string) (bool, error)
	SetNegativeCache(ctx context.Context, email string) error
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
