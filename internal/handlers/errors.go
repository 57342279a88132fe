// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/repository"
	"github.com/linkman-app/linkman/internal/services/account"
	"github.com/linkman-app/linkman/internal/services/bookmarks"
	"github.com/linkman-app/linkman/internal/token"
)

// jsonError writes a JSON error body with the given status.
func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// mapError translates service and repository errors into HTTP responses:
// validation problems and conflicts become 400 with detail, missing or
// unowned resources become 404, bad credentials 401, and everything else
// is an opaque 500.
func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return jsonError(c, http.StatusNotFound, "not found")
	case errors.Is(err, bookmarks.ErrInvalidName),
		errors.Is(err, bookmarks.ErrInvalidURL),
		errors.Is(err, bookmarks.ErrDuplicateName),
		errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, account.ErrInvalidEmail),
		errors.Is(err, account.ErrWeakPassword),
		errors.Is(err, token.ErrInvalidToken):
		return jsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		return jsonError(c, http.StatusUnauthorized, err.Error())
	default:
		slog.Error("request_failed", "method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
		return jsonError(c, http.StatusInternalServerError, "internal server error")
	}
}
