package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hormonya/hormonya/internal/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, name, age, gender, height, weight, bmi`

// CreateUser inserts a user that has only an email.
func (r *Repository) CreateUser(ctx context.Context, email string) (*model.User, error) {
	query := `INSERT INTO users (email) VALUES ($1) RETURNING id`

	user := &model.User{Email: email}
	if err := r.pool.QueryRow(ctx, query, email).Scan(&user.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// UpdateProfile overwrites every profile column of the user with the given email.
func (r *Repository) UpdateProfile(ctx context.Context, email string, p model.Profile) (*model.User, error) {
	query := `
		UPDATE users
		SET name = $2, age = $3, gender = $4, height = $5, weight = $6, bmi = $7
		WHERE email = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		email,
		p.Name,
		p.Age,
		p.Gender,
		p.Height,
		p.Weight,
		p.BMI,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Age,
		&user.Gender,
		&user.Height,
		&user.Weight,
		&user.BMI,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
