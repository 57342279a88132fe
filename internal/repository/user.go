// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/linkman-app/linkman/internal/models"
)

// CreateUserWithDefaultGroup creates a new user together with their
// "Default" group in a single transaction. A concurrent signup with the
// same email surfaces as ErrConflict via the unique constraint on email.
func (r *Repository) CreateUserWithDefaultGroup(ctx context.Context, email, passwordHash string) (*models.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, total_groups) VALUES (?, ?, 1)`,
		email, passwordHash)
	if err != nil {
		return nil, wrapError(err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO groups (user_id, name) VALUES (?, ?)`,
		userID, models.DefaultGroupName); err != nil {
		return nil, wrapError(err)
	}

	var user models.User
	if err := tx.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, userID); err != nil {
		return nil, wrapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// EmailExists checks if a user with the given email exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE email = ?`, email); err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkUserVerified flips the user's verification flag. Idempotent.
func (r *Repository) MarkUserVerified(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_verified = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return wrapError(err)
	}
	return requireAffected(res)
}

// UpdateUserPassword replaces a user's password hash.
func (r *Repository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		passwordHash, id)
	if err != nil {
		return wrapError(err)
	}
	return requireAffected(res)
}

// DeleteUser deletes a user. Groups, links, and sessions cascade at the
// store level.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return wrapError(err)
	}
	return requireAffected(res)
}
