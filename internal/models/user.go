// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package models

import "time"

// User is an account holder. Email is stored case-normalized and unique.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsVerified   bool      `db:"is_verified" json:"is_verified"`
	TotalGroups  int64     `db:"total_groups" json:"total_groups"`
	TotalLinks   int64     `db:"total_links" json:"total_links"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
