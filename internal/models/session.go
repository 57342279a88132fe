// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package models

import "time"

// Session is a server-side login session. The key is an opaque random
// identifier transported to the client inside a signed cookie.
type Session struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	Key       string    `db:"key" json:"-"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
