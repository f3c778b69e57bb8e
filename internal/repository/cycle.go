package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/model"
)

// CreateCycle appends a cycle start for the user.
func (r *Repository) CreateCycle(ctx context.Context, userID int64, start cycle.Date) (*model.Cycle, error) {
	query := `INSERT INTO cycles (user_id, start_date) VALUES ($1, $2) RETURNING id`

	c := &model.Cycle{UserID: userID, StartDate: start}
	if err := r.pool.QueryRow(ctx, query, userID, start.Time()).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("failed to create cycle: %w", err)
	}

	return c, nil
}

// ListCycles returns the user's cycles, most recent start first.
func (r *Repository) ListCycles(ctx context.Context, userID int64) ([]*model.Cycle, error) {
	query := `
		SELECT id, user_id, start_date
		FROM cycles
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	defer rows.Close()

	var cycles []*model.Cycle
	for rows.Next() {
		var (
			c     model.Cycle
			start time.Time
		)
		if err := rows.Scan(&c.ID, &c.UserID, &start); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		c.StartDate = cycle.FromTime(start)
		cycles = append(cycles, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cycles: %w", err)
	}

	return cycles, nil
}
