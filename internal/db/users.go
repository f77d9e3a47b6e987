package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken is returned by CreateUser when the email violates the unique constraint.
var ErrEmailTaken = errors.New("email already registered")

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// CreateUser inserts a user with an already hashed password and returns its ID
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string, skills []string) (uuid.UUID, error) {
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, skills)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, email, passwordHash, skillsJSON,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

const userColumns = `id, name, email, password_hash, skills, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var skills []byte
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &skills, &u.CreatedAt); err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &u.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills: %w", err)
		}
	}
	return &u, nil
}

// GetUser returns the user with the given ID, or nil if none exists
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns the user with the given email, or nil if none exists
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, nil
	}
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// CheckEmailExists reports whether an account already uses email
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// DeleteUser removes a user. Profiles linked to the user are kept and unlinked.
func (db *DB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// SaveRecommendations stores a course recommendation payload for a user.
func (db *DB) SaveRecommendations(ctx context.Context, userID uuid.UUID, payload json.RawMessage) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO recommendations (user_id, payload) VALUES ($1, $2) RETURNING id`,
		userID, []byte(payload),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save recommendations: %w", err)
	}
	return id, nil
}
