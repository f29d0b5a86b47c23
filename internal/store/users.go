package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/ironplan/internal/model"
	"github.com/google/uuid"
)

// CreateUser inserts a new user. Returns ErrDuplicateEmail if the email
// is already registered.
func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	u := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, s.bind(`
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`),
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}

// GetUser fetches a user by id
func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, s.bind(`
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE id = ?`), id))
}

// GetUserByEmail fetches a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, s.bind(`
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = ?`), email))
}

func (s *Store) scanUser(row *sql.Row) (*model.User, error) {
	u := &model.User{}
	var created int64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = toTime(created)
	return u, nil
}
