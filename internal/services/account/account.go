// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package account implements signup, login, password reset, and account
// deletion.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/linkman-app/linkman/internal/models"
	"github.com/linkman-app/linkman/internal/repository"
	"github.com/linkman-app/linkman/internal/services/email"
	"github.com/linkman-app/linkman/internal/services/session"
	"github.com/linkman-app/linkman/internal/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("a user already exists with that email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// MinPasswordLength matches the login form constraints.
const MinPasswordLength = 8

// dummyHash is used for constant-time login to prevent timing attacks.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Service implements account operations.
type Service struct {
	repo       *repository.Repository
	resetCodec *token.Codec
	mailer     *email.Service
	sessions   *session.Manager
}

// NewService creates a new account service.
func NewService(repo *repository.Repository, resetCodec *token.Codec, mailer *email.Service, sessions *session.Manager) *Service {
	return &Service{
		repo:       repo,
		resetCodec: resetCodec,
		mailer:     mailer,
		sessions:   sessions,
	}
}

// NormalizeEmail lowercases the domain part of an email address, the same
// normalization applied at login.
func NormalizeEmail(addr string) string {
	addr = strings.TrimSpace(addr)
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return addr
	}
	return addr[:at+1] + strings.ToLower(addr[at+1:])
}

// ValidateCredentials checks email shape and password length. Shared by
// signup and password reset.
func ValidateCredentials(addr, password string) error {
	if _, err := mail.ParseAddress(addr); err != nil {
		return ErrInvalidEmail
	}
	if len(addr) > 254 {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Signup creates a new unverified user together with their "Default"
// group. A concurrent signup with the same email is caught by the store's
// unique constraint and mapped to ErrEmailTaken; the advisory existence
// check only gives a friendlier fast path.
func (s *Service) Signup(ctx context.Context, addr, password string) (*models.User, error) {
	addr = NormalizeEmail(addr)
	if err := ValidateCredentials(addr, password); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUserWithDefaultGroup(ctx, addr, string(passwordHash))
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("signup_success", "user_id", user.ID, "email", addr)
	return user, nil
}

// Login authenticates a user by email and password.
func (s *Service) Login(ctx context.Context, addr, password string) (*models.User, error) {
	addr = NormalizeEmail(addr)

	user, err := s.repo.GetUserByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform a bcrypt comparison.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", addr, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "email", addr, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID)
	return user, nil
}

// RequestPasswordReset emails a reset link. Unknown addresses are a silent
// no-op to avoid account enumeration; a failed send is logged but not
// surfaced for the same reason.
func (s *Service) RequestPasswordReset(ctx context.Context, addr string) error {
	addr = NormalizeEmail(addr)

	user, err := s.repo.GetUserByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Info("password_reset_skipped", "reason", "unknown_email")
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	tok, err := s.resetCodec.Issue(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, tok); err != nil {
		slog.Warn("password_reset_email_failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword verifies a reset token and sets a new password. Every
// session of the user is destroyed afterwards.
func (s *Service) ResetPassword(ctx context.Context, tok, newPassword string) error {
	userID, err := s.resetCodec.Verify(tok)
	if err != nil {
		return token.ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return token.ErrInvalidToken
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateUserPassword(ctx, user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessions.DestroyAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to destroy sessions: %w", err)
	}

	slog.Info("password_reset_success", "user_id", user.ID)
	return nil
}

// Profile returns the user's account data including their group and link
// counters.
func (s *Service) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// Delete removes the account. Groups, links, and sessions cascade at the
// store level.
func (s *Service) Delete(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	slog.Info("account_deleted", "user_id", userID)
	return nil
}
