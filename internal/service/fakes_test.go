package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/hormonya/hormonya/internal/cache"
	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/model"
	"github.com/hormonya/hormonya/internal/repository"
)

var (
	errStoreDown = errors.New("store down")
	errCacheDown = errors.New("cache down")
)

// memStore is an in-memory Store.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*model.User
	cycles  []*model.Cycle
	nextID  int64
	failOn  string
	lookups int
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*model.User)}
}

func (s *memStore) fail(op string) error {
	if s.failOn == op {
		return errStoreDown
	}
	return nil
}

func (s *memStore) CreateUser(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateUser"); err != nil {
		return nil, err
	}
	if _, ok := s.users[email]; ok {
		return nil, repository.ErrEmailExists
	}
	s.nextID++
	u := &model.User{ID: s.nextID, Email: email}
	s.users[email] = u
	cp := *u
	return &cp, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if err := s.fail("GetUserByEmail"); err != nil {
		return nil, err
	}
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) UpdateProfile(_ context.Context, email string, p model.Profile) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateProfile"); err != nil {
		return nil, err
	}
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.ApplyProfile(p)
	cp := *u
	return &cp, nil
}

func (s *memStore) CreateCycle(_ context.Context, userID int64, start cycle.Date) (*model.Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateCycle"); err != nil {
		return nil, err
	}
	s.nextID++
	c := &model.Cycle{ID: s.nextID, UserID: userID, StartDate: start}
	s.cycles = append(s.cycles, c)
	return c, nil
}

func (s *memStore) ListCycles(_ context.Context, userID int64) ([]*model.Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Cycle
	for _, c := range s.cycles {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate == out[j].StartDate {
			return out[i].ID > out[j].ID
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

// memCache is an in-memory UserCache.
type memCache struct {
	mu      sync.Mutex
	users   map[string]*model.User
	neg     map[string]bool
	failSet bool
}

func newMemCache() *memCache {
	return &memCache{users: make(map[string]*model.User), neg: make(map[string]bool)}
}

func (c *memCache) GetUser(_ context.Context, email string) (*model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.users[email]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	cp := *u
	return &cp, nil
}

func (c *memCache) SetUser(_ context.Context, user *model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errCacheDown
	}
	cp := *user
	c.users[user.Email] = &cp
	delete(c.neg, user.Email)
	return nil
}

func (c *memCache) DeleteUser(_ context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.users, email)
	delete(c.neg, email)
	return nil
}

func (c *memCache) IsNegativelyCached(_ context.Context, email string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.neg[email], nil
}

func (c *memCache) SetNegativeCache(_ context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.neg[email] = true
	return nil
}
