// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/middleware"
	"github.com/linkman-app/linkman/internal/services/bookmarks"
)

// ListLinks returns the user's links, optionally filtered with ?group=.
func (h *Handlers) ListLinks(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var groupID *int64
	if raw := c.QueryParam("group"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid group filter")
		}
		groupID = &id
	}

	links, err := h.bookmarks.ListLinks(c.Request().Context(), user.ID, groupID)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"links": links})
}

// CreateLinkRequest is the request body for creating a link.
type CreateLinkRequest struct {
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
}

// CreateLink creates a link in one of the user's groups.
func (h *Handlers) CreateLink(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req CreateLinkRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.GroupID == 0 {
		return jsonError(c, http.StatusBadRequest, "group_id is required")
	}

	link, err := h.bookmarks.CreateLink(c.Request().Context(), user.ID, req.GroupID, req.Name, req.URL)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, link)
}

// GetLink returns a single link.
func (h *Handlers) GetLink(c echo.Context) error {
	user := middleware.CurrentUser(c)

	linkID, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "not found")
	}

	link, err := h.bookmarks.GetLink(c.Request().Context(), user.ID, linkID)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, link)
}

// UpdateLinkRequest selects one of the two update modes: with clicked set
// the click counter is incremented and nothing else may be supplied;
// otherwise name, url, and group_id describe a rename/move.
type UpdateLinkRequest struct {
	Clicked bool   `json:"clicked"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	GroupID int64  `json:"group_id"`
}

// UpdateLink applies a rename/move or a click increment, never both.
func (h *Handlers) UpdateLink(c echo.Context) error {
	user := middleware.CurrentUser(c)

	linkID, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "not found")
	}

	var req UpdateLinkRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	var update bookmarks.LinkUpdate
	if req.Clicked {
		if req.Name != "" || req.URL != "" || req.GroupID != 0 {
			return jsonError(c, http.StatusBadRequest, "a click update cannot set other fields")
		}
		update = bookmarks.RecordClick{}
	} else {
		if req.GroupID == 0 {
			return jsonError(c, http.StatusBadRequest, "group_id is required")
		}
		update = bookmarks.Rename{Name: req.Name, URL: req.URL, GroupID: req.GroupID}
	}

	link, err := h.bookmarks.UpdateLink(c.Request().Context(), user.ID, linkID, update)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, link)
}

// DeleteLink deletes a link.
func (h *Handlers) DeleteLink(c echo.Context) error {
	user := middleware.CurrentUser(c)

	linkID, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "not found")
	}

	if err := h.bookmarks.DeleteLink(c.Request().Context(), user.ID, linkID); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
