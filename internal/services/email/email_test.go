// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package email_test

import (
	"context"
	"testing"
	"time"

	"github.com/linkman-app/linkman/internal/config"
	"github.com/linkman-app/linkman/internal/services/email"
	"github.com/linkman-app/linkman/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendVerification(t *testing.T) {
	testutil.InitI18n(t)

	sender := &testutil.FakeSender{}
	svc := email.NewService(sender, "http://localhost:8080/", 15*time.Minute)

	require.NoError(t, svc.SendVerification(context.Background(), "test@example.com", "tok123"))

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "test@example.com", sent[0].To)
	assert.NotEmpty(t, sent[0].Subject)
	assert.Contains(t, sent[0].Body, "http://localhost:8080/verify-email/?token=tok123")
	assert.Contains(t, sent[0].Body, "15")
}

func TestSendPasswordReset(t *testing.T) {
	testutil.InitI18n(t)

	sender := &testutil.FakeSender{}
	svc := email.NewService(sender, "http://localhost:8080", time.Hour)

	require.NoError(t, svc.SendPasswordReset(context.Background(), "test@example.com", "tok123"))

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "http://localhost:8080/password-reset/confirm/?token=tok123")
}

func TestNewSMTPSender_RequiresHostAndFrom(t *testing.T) {
	_, err := email.NewSMTPSender(&config.SMTPConfig{From: "noreply@example.com"})
	assert.Error(t, err)

	_, err = email.NewSMTPSender(&config.SMTPConfig{Host: "smtp.example.com"})
	assert.Error(t, err)

	sender, err := email.NewSMTPSender(&config.SMTPConfig{Host: "smtp.example.com", From: "noreply@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, sender)
}
