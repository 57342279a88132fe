// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/linkman-app/linkman/internal/repository"
	"github.com/linkman-app/linkman/internal/services/account"
	"github.com/linkman-app/linkman/internal/services/email"
	"github.com/linkman-app/linkman/internal/services/session"
	"github.com/linkman-app/linkman/internal/testutil"
	"github.com/linkman-app/linkman/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newAccountService(t *testing.T) (*account.Service, *repository.Repository, *testutil.FakeSender) {
	t.Helper()
	testutil.InitI18n(t)

	_, repo := testutil.NewTestDB(t)
	sender := &testutil.FakeSender{}
	mailer := email.NewService(sender, "http://localhost:8080", 15*time.Minute)
	sessions := session.NewManager(repo, testSecret, "_session", time.Hour, false)
	codec := token.NewCodec(token.PurposePasswordReset, testSecret, time.Hour)
	return account.NewService(repo, codec, mailer, sessions), repo, sender
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Test@example.com", account.NormalizeEmail("Test@EXAMPLE.COM"))
	assert.Equal(t, "test@example.com", account.NormalizeEmail("  test@Example.com  "))
	assert.Equal(t, "no-at-sign", account.NormalizeEmail("no-at-sign"))
}

func TestSignup(t *testing.T) {
	svc, repo, _ := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "test@Example.COM", "password123")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.False(t, user.IsVerified)
	assert.Equal(t, int64(1), user.TotalGroups)

	groups, err := repo.ListGroups(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Default", groups[0].Name)
}

func TestSignup_Validation(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "not-an-email", "password123")
	assert.ErrorIs(t, err, account.ErrInvalidEmail)

	_, err = svc.Signup(ctx, "test@example.com", "short")
	assert.ErrorIs(t, err, account.ErrWeakPassword)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "test@EXAMPLE.com", "password123")
	assert.ErrorIs(t, err, account.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "test@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Login(ctx, "test@example.com", "wrong-password")
	assert.ErrorIs(t, err, account.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "unknown@example.com", "password123")
	assert.ErrorIs(t, err, account.ErrInvalidCredentials)
}

func TestRequestPasswordReset(t *testing.T) {
	svc, _, sender := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "test@Example.com"))
	require.Len(t, sender.Sent(), 1)
	assert.Equal(t, "test@example.com", sender.Sent()[0].To)
	assert.Contains(t, sender.Sent()[0].Body, "password-reset/confirm")
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	svc, _, sender := newAccountService(t)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, sender.Sent())
}

func TestResetPassword(t *testing.T) {
	svc, repo, _ := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, repo.CreateSession(ctx, "old-session", user.ID, time.Now().Add(time.Hour)))

	codec := token.NewCodec(token.PurposePasswordReset, testSecret, time.Hour)
	tok, err := codec.Issue(user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, tok, "new-password"))

	_, err = svc.Login(ctx, "test@example.com", "new-password")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "test@example.com", "password123")
	assert.ErrorIs(t, err, account.ErrInvalidCredentials)

	// Existing sessions are revoked.
	_, err = repo.GetSessionByKey(ctx, "old-session")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	err := svc.ResetPassword(ctx, "garbage", "new-password")
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	// Verification tokens must not work as reset tokens.
	user, err := svc.Signup(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	verifyCodec := token.NewCodec(token.PurposeEmailVerification, testSecret, time.Hour)
	tok, err := verifyCodec.Issue(user.ID)
	require.NoError(t, err)
	err = svc.ResetPassword(ctx, tok, "new-password")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestResetPassword_WeakPassword(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	codec := token.NewCodec(token.PurposePasswordReset, testSecret, time.Hour)
	tok, err := codec.Issue(user.ID)
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, tok, "short")
	assert.ErrorIs(t, err, account.ErrWeakPassword)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err = repo.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
