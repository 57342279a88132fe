// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/middleware"
)

// Me returns the authenticated user's profile.
func (h *Handlers) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)

	profile, err := h.accounts.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"user": profile})
}

// DeleteMe deletes the authenticated user's account. Groups, links, and
// sessions cascade at the store level.
func (h *Handlers) DeleteMe(c echo.Context) error {
	user := middleware.CurrentUser(c)

	if err := h.accounts.Delete(c.Request().Context(), user.ID); err != nil {
		return mapError(c, err)
	}

	c.SetCookie(h.sessions.ExpiredCookie())
	return c.NoContent(http.StatusNoContent)
}
