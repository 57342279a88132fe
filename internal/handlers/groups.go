// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/middleware"
)

// ListGroups returns all groups of the authenticated user.
func (h *Handlers) ListGroups(c echo.Context) error {
	user := middleware.CurrentUser(c)

	groups, err := h.bookmarks.ListGroups(c.Request().Context(), user.ID)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"groups": groups})
}

// GroupRequest is the request body for creating or renaming a group.
type GroupRequest struct {
	Name string `json:"name"`
}

// CreateGroup creates a group for the authenticated user.
func (h *Handlers) CreateGroup(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req GroupRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	group, err := h.bookmarks.CreateGroup(c.Request().Context(), user.ID, req.Name)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, group)
}

// GetGroup returns a single group.
func (h *Handlers) GetGroup(c echo.Context) error {
	user := middleware.CurrentUser(c)

	groupID, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "not found")
	}

	group, err := h.bookmarks.GetGroup(c.Request().Context(), user.ID, groupID)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, group)
}

// RenameGroup changes a group's name.
func (h *Handlers) RenameGroup(c echo.Context) error {
	user := middleware.CurrentUser(c)

	groupID, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "not found")
	}

	var req GroupRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	group, err := h.bookmarks.RenameGroup(c.Request().Context(), user.ID, groupID, req.Name)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, group)
}

// DeleteGroup deletes a group and, through the store cascade, its links.
func (h *Handlers) DeleteGroup(c echo.Context) error {
	user := middleware.CurrentUser(c)

	groupID, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "not found")
	}

	if err := h.bookmarks.DeleteGroup(c.Request().Context(), user.ID, groupID); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
