package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hormonya/hormonya/internal/auth"
	"github.com/hormonya/hormonya/internal/migrations"
	"github.com/hormonya/hormonya/internal/repository"
	"github.com/hormonya/hormonya/internal/repository/sqlite"
	"github.com/hormonya/hormonya/internal/service"
)

type output struct {
	UserID         int64    `json:"user_id"`
	Email          string   `json:"email"`
	Created        bool     `json:"created"`
	Cycles         []string `json:"cycles,omitempty"`
	PredictedStart string   `json:"predicted_start,omitempty"`
	Token          string   `json:"token,omitempty"`
}

// seed-user creates (or finds) a user, records cycle starts and prints a
// session token, for exercising the API with curl.
func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "database URL (sqlite:// or postgres://)")
		email       = flag.String("email", "demo@hormonya.local", "user email")
		cyclesInput = flag.String("cycles", "", "comma-separated cycle start dates (YYYY-MM-DD)")
		secret      = flag.String("session-secret", os.Getenv("SESSION_SECRET"), "secret used to sign the session token")
		ttl         = flag.Duration("ttl", 24*time.Hour, "session token lifetime")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := openStore(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer closeStore()

	users := service.NewUserService(store, nil, nil)
	cycles := service.NewCycleService(users, store, nil)

	login, err := users.LoginByEmail(ctx, *email)
	if err != nil {
		fmt.Fprintln(os.Stderr, "login:", err)
		os.Exit(1)
	}

	out := output{
		UserID:  login.User.ID,
		Email:   login.User.Email,
		Created: login.IsNew,
	}

	for _, start := range splitDates(*cyclesInput) {
		if _, err := cycles.SaveCycle(ctx, login.User.Email, start); err != nil {
			fmt.Fprintf(os.Stderr, "save cycle %s: %v\n", start, err)
			os.Exit(1)
		}
		out.Cycles = append(out.Cycles, start)
	}

	if len(out.Cycles) > 0 {
		p, err := cycles.Prediction(ctx, login.User.Email)
		if err != nil {
			fmt.Fprintln(os.Stderr, "predict:", err)
			os.Exit(1)
		}
		out.PredictedStart = p.PredictedStart.String()
	}

	if *secret != "" {
		key, err := auth.KeyFromSecret(*secret)
		if err != nil {
			fmt.Fprintln(os.Stderr, "derive key:", err)
			os.Exit(1)
		}
		out.Token, err = auth.NewIssuer(key, *ttl).Issue(login.User)
		if err != nil {
			fmt.Fprintln(os.Stderr, "issue token:", err)
			os.Exit(1)
		}
	}

	switch strings.ToLower(*format) {
	case "plain":
		if out.Token != "" {
			fmt.Println(out.Token)
		} else {
			fmt.Println(out.Email)
		}
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func openStore(ctx context.Context, databaseURL string) (service.Store, func() error, error) {
	dialect, dsn, err := migrations.ParseURL(databaseURL)
	if err != nil {
		return nil, nil, err
	}

	if dialect == migrations.Postgres {
		repo, err := repository.New(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}

	store, err := sqlite.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(ctx, nil); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}

func splitDates(input string) []string {
	var dates []string
	for _, part := range strings.Split(input, ",") {
		if d := strings.TrimSpace(part); d != "" {
			dates = append(dates, d)
		}
	}
	return dates
}
