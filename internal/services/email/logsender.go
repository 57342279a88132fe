// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package email

import (
	"context"
	"log/slog"
)

// LogSender writes outgoing mail to the log instead of delivering it.
// Used in development when no SMTP host is configured.
type LogSender struct{}

// Send logs the message.
func (LogSender) Send(_ context.Context, to, subject, body string) error {
	slog.Info("mail_not_sent_logged", "to", to, "subject", subject, "body", body)
	return nil
}
