// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package server wires configuration, database, services, and routes into
// the running HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/config"
	"github.com/linkman-app/linkman/internal/database"
	"github.com/linkman-app/linkman/internal/handlers"
	"github.com/linkman-app/linkman/internal/i18n"
	"github.com/linkman-app/linkman/internal/repository"
	"github.com/linkman-app/linkman/internal/services/account"
	"github.com/linkman-app/linkman/internal/services/bookmarks"
	"github.com/linkman-app/linkman/internal/services/email"
	"github.com/linkman-app/linkman/internal/services/session"
	"github.com/linkman-app/linkman/internal/services/verification"
	"github.com/linkman-app/linkman/internal/token"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	secret := secretKey(cfg)
	repo := repository.New(db)

	sessions := session.NewManager(repo, secret,
		cfg.Session.CookieName, cfg.Session.MaxAge, cfg.CookieSecure())
	if err := sessions.DeleteExpired(ctx); err != nil {
		slog.Warn("failed to sweep expired sessions", "error", err)
	}

	sender, err := mailSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up mail sender: %w", err)
	}
	mailer := email.NewService(sender, cfg.Server.BaseURL, cfg.Token.VerificationTTL)

	verifyCodec := token.NewCodec(token.PurposeEmailVerification, secret, cfg.Token.VerificationTTL)
	resetCodec := token.NewCodec(token.PurposePasswordReset, secret, cfg.Token.ResetTTL)

	accounts := account.NewService(repo, resetCodec, mailer, sessions)
	verif := verification.NewService(repo, verifyCodec, mailer)
	bm := bookmarks.NewService(repo)

	h := handlers.New(accounts, verif, bm, sessions)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)
	setupRoutes(e, h, sessions, repo)

	return startWithGracefulShutdown(e, cfg)
}

// secretKey returns the configured signing secret, or a random one in
// development. A generated key invalidates sessions and in-flight tokens
// on restart, so it is only a dev convenience.
func secretKey(cfg *config.Config) []byte {
	if cfg.Token.SecretKey != "" {
		return []byte(cfg.Token.SecretKey)
	}
	slog.Warn("no secret key configured, generating a throwaway one; sessions and tokens will not survive a restart")
	return securecookie.GenerateRandomKey(32)
}

// mailSender picks SMTP delivery when configured, otherwise falls back to
// logging outgoing mail.
func mailSender(cfg *config.Config) (email.Sender, error) {
	if cfg.SMTP.Host == "" {
		slog.Warn("no SMTP host configured, outgoing mail will be logged instead of sent")
		return email.LogSender{}, nil
	}
	return email.NewSMTPSender(&cfg.SMTP)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
