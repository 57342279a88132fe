// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package models

import "time"

// Group is a user-owned named collection of links.
// The name is unique within the owning user's groups.
type Group struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultGroupName is the name of the group created alongside every new user.
const DefaultGroupName = "Default"
