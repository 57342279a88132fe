// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package server

import (
	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/handlers"
	"github.com/linkman-app/linkman/internal/middleware"
	"github.com/linkman-app/linkman/internal/repository"
	"github.com/linkman-app/linkman/internal/services/session"
)

func setupRoutes(e *echo.Echo, h *handlers.Handlers, sessions *session.Manager, repo *repository.Repository) {
	e.Use(middleware.LoadUser(sessions, repo))

	e.GET("/health", h.Health)

	limited := authRateLimiter()
	e.POST("/signup/", h.Signup, limited)
	e.POST("/login/", h.Login, limited)
	e.POST("/logout/", h.Logout, middleware.RequireAuth)
	e.GET("/verify-email/", h.VerifyEmail)
	e.POST("/verify-email/resend/", h.ResendVerification, limited)
	e.POST("/password-reset/", h.RequestPasswordReset, limited)
	e.POST("/password-reset/confirm/", h.ConfirmPasswordReset)

	me := e.Group("/users/me", middleware.RequireAuth)
	me.GET("/", h.Me)
	me.DELETE("/", h.DeleteMe)

	groups := e.Group("/groups", middleware.RequireAuth)
	groups.GET("/", h.ListGroups)
	groups.POST("/", h.CreateGroup)
	groups.GET("/:id/", h.GetGroup)
	groups.PATCH("/:id/", h.RenameGroup)
	groups.DELETE("/:id/", h.DeleteGroup)

	links := e.Group("/links", middleware.RequireAuth)
	links.GET("/", h.ListLinks)
	links.POST("/", h.CreateLink)
	links.GET("/:id/", h.GetLink)
	links.PUT("/:id/", h.UpdateLink)
	links.DELETE("/:id/", h.DeleteLink)
}
