package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hormonya/hormonya/internal/model"
	"github.com/hormonya/hormonya/internal/repository"
)

func (s *Store) CreateUser(ctx context.Context, email string) (*model.User, error) {
	result, err := s.db.ExecContext(ctx, `INSERT INTO users (email) VALUES (?)`, email)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, repository.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return &model.User{ID: id, Email: email}, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	var (
		name, gender        sql.NullString
		age                 sql.NullInt64
		height, weight, bmi sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, age, gender, height, weight, bmi
		 FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Email, &name, &age, &gender, &height, &weight, &bmi)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}

	user.Name = nullString(name)
	user.Gender = nullString(gender)
	if age.Valid {
		a := int(age.Int64)
		user.Age = &a
	}
	user.Height = nullFloat(height)
	user.Weight = nullFloat(weight)
	user.BMI = nullFloat(bmi)
	return user, nil
}

func (s *Store) UpdateProfile(ctx context.Context, email string, p model.Profile) (*model.User, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, age = ?, gender = ?, height = ?, weight = ?, bmi = ?
		 WHERE email = ?`,
		p.Name, p.Age, p.Gender, p.Height, p.Weight, p.BMI, email,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, repository.ErrUserNotFound
	}

	return s.GetUserByEmail(ctx, email)
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
