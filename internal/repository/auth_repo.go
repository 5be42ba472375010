package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aquascape/internal/models"
)

type UserRepository struct {
	db *sql.DB
	d  Dialect
}

func NewUserRepository(db *sql.DB, d Dialect) *UserRepository {
	return &UserRepository{db: db, d: d}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash) VALUES (?, ?) RETURNING id`
	selectUserByUsernameSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.d.Rebind(insertUserSQL), username, passwordHash).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	return id, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, r.d.Rebind(selectUserByUsernameSQL), username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}
