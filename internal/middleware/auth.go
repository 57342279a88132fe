// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package middleware provides authentication middleware for Echo.
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/models"
	"github.com/linkman-app/linkman/internal/repository"
	"github.com/linkman-app/linkman/internal/services/session"
)

const userContextKey = "auth.user"

// LoadUser resolves the session cookie and stores the authenticated user
// in the Echo context. Requests without a valid session pass through
// unauthenticated.
func LoadUser(sessions *session.Manager, repo *repository.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID, err := sessions.UserID(ctx, c.Request())
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					return err
				}
				return next(c)
			}

			user, err := repo.GetUserByID(ctx, userID)
			if err != nil {
				// A session for a deleted user is stale: drop it.
				if errors.Is(err, repository.ErrNotFound) {
					if cookie, destroyErr := sessions.Destroy(ctx, c.Request()); destroyErr == nil {
						c.SetCookie(cookie)
					}
					return next(c)
				}
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
