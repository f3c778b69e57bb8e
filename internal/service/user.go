package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hormonya/hormonya/internal/cache"
	"github.com/hormonya/hormonya/internal/metrics"
	"github.com/hormonya/hormonya/internal/model"
	"github.com/hormonya/hormonya/internal/repository"
)

// UserService handles login-by-email and profile updates.
type UserService struct {
	store   UserStore
	cache   UserCache
	metrics metrics.Recorder
}

// NewUserService creates a new UserService. userCache may be nil.
func NewUserService(store UserStore, userCache UserCache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   store,
		cache:   userCache,
		metrics: recorder,
	}
}

// LoginResult is the outcome of a login attempt.
type LoginResult struct {
	User  *model.User
	IsNew bool
}

// LoginByEmail returns the user for email, creating it on first sight.
func (s *UserService) LoginByEmail(ctx context.Context, email string) (*LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.GetByEmail(ctx, email)
	if err == nil {
		s.metrics.IncLogin(metrics.LoginExisting)
		return &LoginResult{User: user}, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	user, err = s.store.CreateUser(ctx, email)
	if err != nil {
		// Another request created it between lookup and insert.
		if errors.Is(err, repository.ErrEmailExists) {
			existing, getErr := s.store.GetUserByEmail(ctx, email)
			if getErr != nil {
				return nil, fmt.Errorf("failed to load user after conflict: %w", getErr)
			}
			s.metrics.IncLogin(metrics.LoginExisting)
			return &LoginResult{User: existing}, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.cache != nil {
		// The lookup above may have left a negative entry. If the user
		// cannot be cached, at least drop that entry.
		if err := s.cache.SetUser(ctx, user); err != nil {
			_ = s.cache.DeleteUser(ctx, email)
		}
	}

	s.metrics.IncLogin(metrics.LoginNew)
	return &LoginResult{User: user, IsNew: true}, nil
}

// GetByEmail looks a user up, cache first.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	if s.cache != nil {
		cached, err := s.cache.GetUser(ctx, email)
		if err == nil {
			s.metrics.IncUserCacheHit()
			return cached, nil
		}
		s.metrics.IncUserCacheMiss()

		// Redis errors fall through to the store.
		if errors.Is(err, cache.ErrCacheMiss) {
			if neg, _ := s.cache.IsNegativelyCached(ctx, email); neg {
				return nil, ErrUserNotFound
			}
		}
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			if s.cache != nil {
				_ = s.cache.SetNegativeCache(ctx, email)
			}
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetUser(ctx, user)
	}

	return user, nil
}

// SaveProfile overwrites the profile of an existing user.
// BMI is derived from height and weight when it is not supplied.
func (s *UserService) SaveProfile(ctx context.Context, email string, p model.Profile) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !p.Finite() {
		return nil, ErrBadMeasure
	}

	p.DeriveBMI()

	user, err := s.store.UpdateProfile(ctx, email, p)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.DeleteUser(ctx, email)
	}

	s.metrics.IncProfileSaved()
	return user, nil
}
