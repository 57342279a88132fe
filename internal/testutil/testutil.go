// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/database"
	"github.com/linkman-app/linkman/internal/i18n"
	"github.com/linkman-app/linkman/internal/models"
	"github.com/linkman-app/linkman/internal/repository"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"
)

var i18nOnce sync.Once

// InitI18n loads the message catalogs once per test binary.
func InitI18n(t *testing.T) {
	t.Helper()
	i18nOnce.Do(func() {
		if err := i18n.Init(); err != nil {
			t.Fatalf("init i18n: %v", err)
		}
	})
}

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a test user with their "Default" group.
// The password is always "password123".
func NewTestUser(t *testing.T, repo *repository.Repository, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := repo.CreateUserWithDefaultGroup(context.Background(), email, string(hash))
	require.NoError(t, err)
	return user
}

// NewTestGroup creates a group for a user.
func NewTestGroup(t *testing.T, repo *repository.Repository, userID int64, name string) *models.Group {
	t.Helper()
	group, err := repo.CreateGroup(context.Background(), userID, name)
	require.NoError(t, err)
	return group
}

// NewTestLink creates a link for a user in the given group.
func NewTestLink(t *testing.T, repo *repository.Repository, userID, groupID int64, name, url string) *models.Link {
	t.Helper()
	link, err := repo.CreateLink(context.Background(), userID, groupID, name, url)
	require.NoError(t, err)
	return link
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// FakeSender records outgoing mail for assertions. Set Err to simulate a
// transport failure.
type FakeSender struct {
	mu       sync.Mutex
	Err      error
	Messages []FakeMessage
}

// FakeMessage is a recorded outgoing mail.
type FakeMessage struct {
	To      string
	Subject string
	Body    string
}

// Send records the message, or fails with the configured error.
func (f *FakeSender) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Messages = append(f.Messages, FakeMessage{To: to, Subject: subject, Body: body})
	return nil
}

// Sent returns a copy of the recorded messages.
func (f *FakeSender) Sent() []FakeMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeMessage(nil), f.Messages...)
}
