// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package email composes and delivers verification and password reset
// mails. Delivery goes through the Sender interface so tests can swap the
// SMTP transport for a fake.
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linkman-app/linkman/internal/config"
	"github.com/linkman-app/linkman/internal/i18n"
	"github.com/wneessen/go-mail"
)

// Sender delivers a single plain-text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service composes the application's outgoing mails.
type Service struct {
	sender          Sender
	baseURL         string
	verificationTTL time.Duration
}

// NewService creates a new email service.
func NewService(sender Sender, baseURL string, verificationTTL time.Duration) *Service {
	return &Service{
		sender:          sender,
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		verificationTTL: verificationTTL,
	}
}

// SendVerification sends a verification email carrying the signed token.
func (s *Service) SendVerification(ctx context.Context, toEmail, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email/?token=%s", s.baseURL, token)

	subject := i18n.T(ctx, "email_verification_subject")
	body := i18n.TData(ctx, "email_verification_body", map[string]any{
		"VerifyURL": verifyURL,
		"Minutes":   int(s.verificationTTL.Minutes()),
	})

	return s.sender.Send(ctx, toEmail, subject, body)
}

// SendPasswordReset sends a password reset email carrying the signed token.
func (s *Service) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/password-reset/confirm/?token=%s", s.baseURL, token)

	subject := i18n.T(ctx, "password_reset_subject")
	body := i18n.TData(ctx, "password_reset_body", map[string]any{
		"ResetURL": resetURL,
	})

	return s.sender.Send(ctx, toEmail, subject, body)
}

// SMTPSender delivers mail via SMTP using go-mail.
type SMTPSender struct {
	cfg *config.SMTPConfig
}

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(cfg *config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &SMTPSender{cfg: cfg}, nil
}

// Send delivers a single message via SMTP.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS (SSL) for port 465, STARTTLS for others
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
