// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package models

import "time"

// Link is a URL entry with a name, owning group, and click counter.
// A link's group always belongs to the same user as the link itself.
type Link struct { //nolint:govet // fieldalignment: readability over optimization
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	GroupID    int64     `db:"group_id" json:"group_id"`
	Name       string    `db:"name" json:"name"`
	URL        string    `db:"url" json:"url"`
	ClickCount int64     `db:"click_count" json:"click_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
