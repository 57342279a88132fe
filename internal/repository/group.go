// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/linkman-app/linkman/internal/models"
)

// CreateGroup creates a group for the user and bumps their group counter.
// A duplicate name for the same user surfaces as ErrConflict via the
// UNIQUE(user_id, name) constraint.
func (r *Repository) CreateGroup(ctx context.Context, userID int64, name string) (*models.Group, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO groups (user_id, name) VALUES (?, ?)`, userID, name)
	if err != nil {
		return nil, wrapError(err)
	}
	groupID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET total_groups = total_groups + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		userID); err != nil {
		return nil, wrapError(err)
	}

	var group models.Group
	if err := tx.GetContext(ctx, &group, `SELECT * FROM groups WHERE id = ?`, groupID); err != nil {
		return nil, wrapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapError(err)
	}
	return &group, nil
}

// GetGroup retrieves a group owned by the user. Unowned groups read as
// not found.
func (r *Repository) GetGroup(ctx context.Context, userID, groupID int64) (*models.Group, error) {
	var group models.Group
	err := r.db.GetContext(ctx, &group,
		`SELECT * FROM groups WHERE id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &group, nil
}

// ListGroups returns all groups of the user ordered by creation date.
func (r *Repository) ListGroups(ctx context.Context, userID int64) ([]models.Group, error) {
	groups := []models.Group{}
	err := r.db.SelectContext(ctx, &groups,
		`SELECT * FROM groups WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// RenameGroup changes a group's name.
func (r *Repository) RenameGroup(ctx context.Context, userID, groupID int64, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE groups SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		name, groupID, userID)
	if err != nil {
		return wrapError(err)
	}
	return requireAffected(res)
}

// DeleteGroup deletes a group. Its links cascade; the user's counters are
// adjusted in the same transaction.
func (r *Repository) DeleteGroup(ctx context.Context, userID, groupID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var linkCount int64
	if err := tx.GetContext(ctx, &linkCount,
		`SELECT COUNT(*) FROM links WHERE group_id = ? AND user_id = ?`, groupID, userID); err != nil {
		return wrapError(err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM groups WHERE id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		return wrapError(err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET total_groups = total_groups - 1, total_links = total_links - ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		linkCount, userID); err != nil {
		return wrapError(err)
	}

	return wrapError(tx.Commit())
}
