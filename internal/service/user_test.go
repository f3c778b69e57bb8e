package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/hormonya/hormonya/internal/metrics"
	"github.com/hormonya/hormonya/internal/model"
)

func TestNormalizeEmail(t *testing.T) {
	tests := map[string]string{
		"  Ana@Example.COM ": "ana@example.com",
		"ana@example.com":    "ana@example.com",
		"   ":                "",
	}
	for in, want := range tests {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoginByEmail_CreatesThenFinds(t *testing.T) {
	ctx := context.Background()
	rec := metrics.NewInMemory()
	svc := NewUserService(newMemStore(), nil, rec)

	first, err := svc.LoginByEmail(ctx, " Ana@Example.com ")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	if !first.IsNew {
		t.Fatal("first login should create the user")
	}
	if first.User.Email != "ana@example.com" {
		t.Errorf("email = %q, want normalised", first.User.Email)
	}

	second, err := svc.LoginByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.IsNew {
		t.Fatal("second login should find the existing user")
	}
	if second.User.ID != first.User.ID {
		t.Errorf("ID = %d, want %d", second.User.ID, first.User.ID)
	}

	snap := rec.Snapshot()
	if snap.LoginsNew != 1 || snap.LoginsExisting != 1 {
		t.Errorf("login metrics = %d/%d, want 1/1", snap.LoginsNew, snap.LoginsExisting)
	}
}

func TestLoginByEmail_EmailRequired(t *testing.T) {
	svc := NewUserService(newMemStore(), nil, nil)

	for _, email := range []string{"", "   "} {
		if _, err := svc.LoginByEmail(context.Background(), email); !errors.Is(err, ErrEmailRequired) {
			t.Errorf("LoginByEmail(%q) err = %v, want ErrEmailRequired", email, err)
		}
	}
}

func TestLoginByEmail_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.failOn = "CreateUser"
	svc := NewUserService(store, nil, nil)

	_, err := svc.LoginByEmail(context.Background(), "ana@example.com")
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("err = %v, want wrapped errStoreDown", err)
	}
}

func TestLoginByEmail_NegativeCacheCleared(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	svc := NewUserService(newMemStore(), c, nil)

	if _, err := svc.GetByEmail(ctx, "ana@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if !c.neg["ana@example.com"] {
		t.Fatal("miss should be negatively cached")
	}

	res, err := svc.LoginByEmail(ctx, "ana@example.com")
	if err != nil || !res.IsNew {
		t.Fatalf("login = %+v, %v; want new user", res, err)
	}
	if c.neg["ana@example.com"] {
		t.Error("negative entry should be cleared after creation")
	}

	if _, err := svc.GetByEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("lookup after login: %v", err)
	}
}

func TestLoginByEmail_NegativeCacheClearedWhenSetFails(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	c.failSet = true
	svc := NewUserService(newMemStore(), c, nil)

	res, err := svc.LoginByEmail(ctx, "bea@example.com")
	if err != nil || !res.IsNew {
		t.Fatalf("login = %+v, %v; want new user", res, err)
	}
	if c.neg["bea@example.com"] {
		t.Fatal("negative entry survived a failed cache write")
	}

	if _, err := svc.GetByEmail(ctx, "bea@example.com"); err != nil {
		t.Fatalf("lookup after login: %v", err)
	}
}

func TestGetByEmail_CacheHit(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rec := metrics.NewInMemory()
	svc := NewUserService(store, newMemCache(), rec)

	if _, err := svc.LoginByEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}
	before := store.lookups

	if _, err := svc.GetByEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if store.lookups != before {
		t.Error("cached user should not hit the store")
	}
	if rec.Snapshot().UserCacheHits != 1 {
		t.Errorf("cache hits = %d, want 1", rec.Snapshot().UserCacheHits)
	}
}

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	svc := NewUserService(newMemStore(), c, nil)

	if _, err := svc.LoginByEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}

	name := "Ana"
	height, weight := 165.0, 58.5
	user, err := svc.SaveProfile(ctx, "ANA@example.com", model.Profile{Name: &name, Height: &height, Weight: &weight})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if user.BMI == nil || *user.BMI != 21.5 {
		t.Errorf("BMI = %v, want derived 21.5", user.BMI)
	}
	if _, ok := c.users["ana@example.com"]; ok {
		t.Error("profile save should invalidate the cached user")
	}

	got, err := svc.GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if !got.HasProfile() {
		t.Error("profile should be visible after save")
	}
}

func TestSaveProfile_Errors(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemStore(), nil, nil)

	if _, err := svc.SaveProfile(ctx, "", model.Profile{}); !errors.Is(err, ErrEmailRequired) {
		t.Errorf("err = %v, want ErrEmailRequired", err)
	}
	if _, err := svc.SaveProfile(ctx, "ghost@example.com", model.Profile{}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}

	inf := math.Inf(1)
	if _, err := svc.SaveProfile(ctx, "ghost@example.com", model.Profile{Height: &inf}); !errors.Is(err, ErrBadMeasure) {
		t.Errorf("err = %v, want ErrBadMeasure", err)
	}
}
