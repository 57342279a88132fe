// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/linkman-app/linkman/internal/models"
	"github.com/vinovest/sqlx"
)

// groupOwnedBy reports whether the group exists and belongs to the user.
func groupOwnedBy(ctx context.Context, q sqlx.QueryerContext, userID, groupID int64) (bool, error) {
	var count int64
	err := sqlx.GetContext(ctx, q, &count,
		`SELECT COUNT(*) FROM groups WHERE id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateLink creates a link in one of the user's groups and bumps their
// link counter. A group that does not exist or belongs to another user
// reads as not found.
func (r *Repository) CreateLink(ctx context.Context, userID, groupID int64, name, url string) (*models.Link, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	owned, err := groupOwnedBy(ctx, tx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotFound
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO links (user_id, group_id, name, url) VALUES (?, ?, ?, ?)`,
		userID, groupID, name, url)
	if err != nil {
		return nil, wrapError(err)
	}
	linkID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET total_links = total_links + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		userID); err != nil {
		return nil, wrapError(err)
	}

	var link models.Link
	if err := tx.GetContext(ctx, &link, `SELECT * FROM links WHERE id = ?`, linkID); err != nil {
		return nil, wrapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapError(err)
	}
	return &link, nil
}

// GetLink retrieves a link owned by the user.
func (r *Repository) GetLink(ctx context.Context, userID, linkID int64) (*models.Link, error) {
	var link models.Link
	err := r.db.GetContext(ctx, &link,
		`SELECT * FROM links WHERE id = ? AND user_id = ?`, linkID, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &link, nil
}

// ListLinks returns all links of the user ordered by creation date.
func (r *Repository) ListLinks(ctx context.Context, userID int64) ([]models.Link, error) {
	links := []models.Link{}
	err := r.db.SelectContext(ctx, &links,
		`SELECT * FROM links WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	return links, nil
}

// ListLinksByGroup returns the user's links within a single group.
func (r *Repository) ListLinksByGroup(ctx context.Context, userID, groupID int64) ([]models.Link, error) {
	links := []models.Link{}
	err := r.db.SelectContext(ctx, &links,
		`SELECT * FROM links WHERE user_id = ? AND group_id = ? ORDER BY created_at, id`,
		userID, groupID)
	if err != nil {
		return nil, err
	}
	return links, nil
}

// UpdateLink sets name, URL, and group of a link. The click counter is
// never touched here. The target group must belong to the same user.
func (r *Repository) UpdateLink(ctx context.Context, userID, linkID, groupID int64, name, url string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	owned, err := groupOwnedBy(ctx, tx, userID, groupID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE links SET name = ?, url = ?, group_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		name, url, groupID, linkID, userID)
	if err != nil {
		return wrapError(err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	return wrapError(tx.Commit())
}

// IncrementClickCount adds exactly one click to a link.
func (r *Repository) IncrementClickCount(ctx context.Context, userID, linkID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE links SET click_count = click_count + 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		linkID, userID)
	if err != nil {
		return wrapError(err)
	}
	return requireAffected(res)
}

// DeleteLink deletes a link and adjusts the user's link counter.
func (r *Repository) DeleteLink(ctx context.Context, userID, linkID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM links WHERE id = ? AND user_id = ?`, linkID, userID)
	if err != nil {
		return wrapError(err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET total_links = total_links - 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		userID); err != nil {
		return wrapError(err)
	}

	return wrapError(tx.Commit())
}
