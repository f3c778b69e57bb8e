package sqlite

import (
	"context"
	"fmt"

	"github.com/hormonya/hormonya/internal/cycle"
	"github.com/hormonya/hormonya/internal/model"
)

func (s *Store) CreateCycle(ctx context.Context, userID int64, start cycle.Date) (*model.Cycle, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO cycles (user_id, start_date) VALUES (?, ?)`, userID, start.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert cycle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return &model.Cycle{ID: id, UserID: userID, StartDate: start}, nil
}

// ListCycles returns the user's cycles, most recent start first.
// start_date is ISO text, so lexical order is date order.
func (s *Store) ListCycles(ctx context.Context, userID int64) ([]*model.Cycle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, start_date FROM cycles
		 WHERE user_id = ?
		 ORDER BY start_date DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	var cycles []*model.Cycle
	for rows.Next() {
		c := &model.Cycle{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.StartDate); err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}
