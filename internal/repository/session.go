// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/linkman-app/linkman/internal/models"
)

// CreateSession persists a new login session.
func (r *Repository) CreateSession(ctx context.Context, key string, userID int64, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (key, user_id, expires_at) VALUES (?, ?, ?)`,
		key, userID, expiresAt.UTC())
	return wrapError(err)
}

// GetSessionByKey retrieves a session by its opaque key.
func (r *Repository) GetSessionByKey(ctx context.Context, key string) (*models.Session, error) {
	var session models.Session
	err := r.db.GetContext(ctx, &session, `SELECT * FROM sessions WHERE key = ?`, key)
	if err != nil {
		return nil, wrapError(err)
	}
	return &session, nil
}

// DeleteSession removes a single session.
func (r *Repository) DeleteSession(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?`, key)
	return wrapError(err)
}

// DeleteUserSessions removes all sessions of a user. Used on password
// reset and account deletion.
func (r *Repository) DeleteUserSessions(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return wrapError(err)
}

// DeleteExpiredSessions removes sessions past their expiry.
func (r *Repository) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
	return wrapError(err)
}
