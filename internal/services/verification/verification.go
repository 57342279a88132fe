// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package verification implements the email verification lifecycle:
// tokens are issued at signup, validated on link visits, and re-issued on
// resend requests. A user moves from unverified to verified exactly once;
// verified is terminal.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linkman-app/linkman/internal/models"
	"github.com/linkman-app/linkman/internal/repository"
	"github.com/linkman-app/linkman/internal/services/account"
	"github.com/linkman-app/linkman/internal/services/email"
	"github.com/linkman-app/linkman/internal/token"
)

// Outcome classifies a verification-link visit.
type Outcome int

const (
	// OutcomeVerified: the user transitioned to verified.
	OutcomeVerified Outcome = iota
	// OutcomeAlreadyVerified: re-visit of a link for a verified user.
	// Reported as success, no state change.
	OutcomeAlreadyVerified
	// OutcomeUserGone: the token was valid but the account no longer
	// exists. The user has to restart signup.
	OutcomeUserGone
	// OutcomeExpired: the token expired but its identity could be
	// recovered, so a resend can be offered.
	OutcomeExpired
	// OutcomeInvalid: tampered, malformed, or otherwise unusable token.
	OutcomeInvalid
)

// Result is the outcome of a verification-link visit. Email is set for
// OutcomeExpired so the caller can offer a resend for the right address.
type Result struct {
	Outcome Outcome
	Email   string
}

// Service runs the verification workflow.
type Service struct {
	repo   *repository.Repository
	codec  *token.Codec
	mailer *email.Service
}

// NewService creates a new verification service.
func NewService(repo *repository.Repository, codec *token.Codec, mailer *email.Service) *Service {
	return &Service{
		repo:   repo,
		codec:  codec,
		mailer: mailer,
	}
}

// Start issues a token for a freshly created user and emails the
// verification link. A transport failure is returned to the caller but
// must never roll back the already committed signup: the account stays
// unverified and recoverable via resend.
func (s *Service) Start(ctx context.Context, user *models.User) error {
	tok, err := s.codec.Issue(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, tok); err != nil {
		slog.Warn("verification_email_failed", "user_id", user.ID, "error", err)
		return err
	}

	slog.Info("verification_email_sent", "user_id", user.ID)
	return nil
}

// Confirm handles a verification-link visit. The returned error is only
// non-nil for unexpected store failures; every token problem is expressed
// through the Result.
func (s *Service) Confirm(ctx context.Context, tok string) (Result, error) {
	userID, err := s.codec.Verify(tok)
	if err != nil {
		return s.classifyInvalid(ctx, tok)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Result{Outcome: OutcomeUserGone}, nil
		}
		return Result{}, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsVerified {
		return Result{Outcome: OutcomeAlreadyVerified}, nil
	}

	if err := s.repo.MarkUserVerified(ctx, user.ID); err != nil {
		return Result{}, fmt.Errorf("failed to mark user verified: %w", err)
	}

	slog.Info("email_verified", "user_id", user.ID)
	return Result{Outcome: OutcomeVerified}, nil
}

// classifyInvalid distinguishes "expired but recoverable" from plain
// invalid. The signature is still checked on the recovery path, so a
// tampered token never reaches here with an identity.
func (s *Service) classifyInvalid(ctx context.Context, tok string) (Result, error) {
	userID, err := s.codec.DecodeExpired(tok)
	if err != nil {
		return Result{Outcome: OutcomeInvalid}, nil
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Result{Outcome: OutcomeInvalid}, nil
		}
		return Result{}, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsVerified {
		return Result{Outcome: OutcomeAlreadyVerified}, nil
	}

	return Result{Outcome: OutcomeExpired, Email: user.Email}, nil
}

// Resend issues a fresh token for an unverified account and re-sends the
// email. Unknown or already verified addresses are a silent no-op to avoid
// account enumeration. State never changes here.
func (s *Service) Resend(ctx context.Context, addr string) error {
	addr = account.NormalizeEmail(addr)

	user, err := s.repo.GetUserByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Info("verification_resend_skipped", "reason", "unknown_email")
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsVerified {
		slog.Info("verification_resend_skipped", "reason", "already_verified", "user_id", user.ID)
		return nil
	}

	tok, err := s.codec.Issue(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, tok); err != nil {
		slog.Warn("verification_email_failed", "user_id", user.ID, "error", err)
		return nil
	}

	slog.Info("verification_email_resent", "user_id", user.ID)
	return nil
}
