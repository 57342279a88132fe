// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package session manages server-side login sessions. The session row
// lives in the database; the client holds only an opaque random key inside
// a signed cookie.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/linkman-app/linkman/internal/repository"
)

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no valid session")

// Manager creates, resolves, and destroys sessions.
type Manager struct { //nolint:govet // fieldalignment: readability over optimization
	repo       *repository.Repository
	sc         *securecookie.SecureCookie
	cookieName string
	maxAge     time.Duration
	secure     bool
}

// NewManager creates a session manager. The secret signs the session
// cookie so a forged key never reaches the database.
func NewManager(repo *repository.Repository, secret []byte, cookieName string, maxAge time.Duration, secure bool) *Manager {
	sc := securecookie.New(secret, nil)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(maxAge.Seconds()))

	return &Manager{
		repo:       repo,
		sc:         sc,
		cookieName: cookieName,
		maxAge:     maxAge,
		secure:     secure,
	}
}

// Create starts a new session for the user and returns the cookie to set.
func (m *Manager) Create(ctx context.Context, userID int64) (*http.Cookie, error) {
	key := uuid.NewString()
	expiresAt := time.Now().Add(m.maxAge)

	if err := m.repo.CreateSession(ctx, key, userID, expiresAt); err != nil {
		return nil, err
	}

	encoded, err := m.sc.Encode(m.cookieName, key)
	if err != nil {
		return nil, err
	}

	return m.cookie(encoded, int(m.maxAge.Seconds())), nil
}

// UserID resolves the session cookie of a request to a user ID.
// Expired sessions are removed on sight.
func (m *Manager) UserID(ctx context.Context, r *http.Request) (int64, error) {
	key, err := m.keyFromRequest(r)
	if err != nil {
		return 0, err
	}

	sess, err := m.repo.GetSessionByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNoSession
		}
		return 0, err
	}

	if time.Now().After(sess.ExpiresAt) {
		_ = m.repo.DeleteSession(ctx, key)
		return 0, ErrNoSession
	}

	return sess.UserID, nil
}

// Destroy ends the session of a request and returns an expired cookie.
func (m *Manager) Destroy(ctx context.Context, r *http.Request) (*http.Cookie, error) {
	key, err := m.keyFromRequest(r)
	if err == nil {
		if delErr := m.repo.DeleteSession(ctx, key); delErr != nil {
			return nil, delErr
		}
	}
	return m.cookie("", -1), nil
}

// DestroyAllForUser ends every session of a user. Used on password reset
// and account deletion.
func (m *Manager) DestroyAllForUser(ctx context.Context, userID int64) error {
	return m.repo.DeleteUserSessions(ctx, userID)
}

// DeleteExpired removes stale session rows.
func (m *Manager) DeleteExpired(ctx context.Context) error {
	return m.repo.DeleteExpiredSessions(ctx)
}

// ExpiredCookie returns a cookie that clears the session on the client.
func (m *Manager) ExpiredCookie() *http.Cookie {
	return m.cookie("", -1)
}

func (m *Manager) keyFromRequest(r *http.Request) (string, error) {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return "", ErrNoSession
	}

	var key string
	if err := m.sc.Decode(m.cookieName, c.Value, &key); err != nil {
		return "", ErrNoSession
	}
	return key, nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
