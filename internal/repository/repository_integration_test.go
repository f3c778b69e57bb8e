//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/model"
	"github.com/hormonya/hormonya/internal/testutil"
)

func TestIntegrationRepository_CreateAndGetUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	email := testutil.UniqueEmail("create")
	created, err := repo.CreateUser(ctx, email)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}

	got, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.ID != created.ID || got.Email != email {
		t.Errorf("got %+v, want id=%d email=%s", got, created.ID, email)
	}
	if got.HasProfile() {
		t.Error("fresh user should have no profile")
	}

	if _, err := repo.CreateUser(ctx, email); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestIntegrationRepository_GetUserNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	if _, err := repo.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIntegrationRepository_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	email := testutil.UniqueEmail("profile")
	if _, err := repo.CreateUser(ctx, email); err != nil {
		t.Fatalf("create user: %v", err)
	}

	name, gender := "Ana", "female"
	age, height, weight, bmi := 29, 165.0, 58.5, 21.5
	updated, err := repo.UpdateProfile(ctx, email, model.Profile{
		Name: &name, Age: &age, Gender: &gender,
		Height: &height, Weight: &weight, BMI: &bmi,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if !updated.HasProfile() || *updated.BMI != 21.5 {
		t.Errorf("unexpected profile: %+v", updated)
	}

	if _, err := repo.UpdateProfile(ctx, "missing@example.com", model.Profile{Name: &name}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIntegrationRepository_Cycles(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	user, err := repo.CreateUser(ctx, testutil.UniqueEmail("cycles"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	for _, s := range []string{"2026-08-10", "2026-10-05", "2026-09-07"} {
		if _, err := repo.CreateCycle(ctx, user.ID, cycle.MustParseDate(s)); err != nil {
			t.Fatalf("create cycle %s: %v", s, err)
		}
	}

	cycles, err := repo.ListCycles(ctx, user.ID)
	if err != nil {
		t.Fatalf("list cycles: %v", err)
	}
	want := []string{"2026-10-05", "2026-09-07", "2026-08-10"}
	if len(cycles) != len(want) {
		t.Fatalf("got %d cycles, want %d", len(cycles), len(want))
	}
	for i, c := range cycles {
		if c.StartDate.String() != want[i] {
			t.Errorf("cycles[%d] = %s, want %s", i, c.StartDate, want[i])
		}
	}
}

func newTestRepository(t *testing.T, ctx context.Context) *Repository {
	t.Helper()

	dbURL := testutil.RequireEnv(t, "DATABASE_URL")
	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, dbURL); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return repo
}
