// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package handlers contains all HTTP handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/services/account"
	"github.com/linkman-app/linkman/internal/services/bookmarks"
	"github.com/linkman-app/linkman/internal/services/session"
	"github.com/linkman-app/linkman/internal/services/verification"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	accounts     *account.Service
	verification *verification.Service
	bookmarks    *bookmarks.Service
	sessions     *session.Manager
}

// New creates a new Handlers instance.
func New(accounts *account.Service, verif *verification.Service, bm *bookmarks.Service, sessions *session.Manager) *Handlers {
	return &Handlers{
		accounts:     accounts,
		verification: verif,
		bookmarks:    bm,
		sessions:     sessions,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// pathID parses the numeric id path parameter.
func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
