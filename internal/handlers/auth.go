// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linkman-app/linkman/internal/i18n"
	"github.com/linkman-app/linkman/internal/services/verification"
)

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// Signup creates a new unverified account with its "Default" group, logs
// the user in, and emails the verification link. A failed email send does
// not undo the signup; the response flags it so the client can point the
// user at the resend flow.
func (h *Handlers) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	if req.PasswordConfirm != "" && req.Password != req.PasswordConfirm {
		return jsonError(c, http.StatusBadRequest, "passwords do not match")
	}

	ctx := c.Request().Context()

	user, err := h.accounts.Signup(ctx, req.Email, req.Password)
	if err != nil {
		return mapError(c, err)
	}

	cookie, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		return mapError(c, err)
	}
	c.SetCookie(cookie)

	emailSent := true
	if err := h.verification.Start(ctx, user); err != nil {
		emailSent = false
	}

	resp := map[string]any{
		"user":                    user,
		"verification_email_sent": emailSent,
	}
	if !emailSent {
		resp["warning"] = i18n.T(ctx, "email_send_failed")
	}
	return c.JSON(http.StatusCreated, resp)
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and starts a session.
func (h *Handlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()

	user, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return mapError(c, err)
	}

	cookie, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		return mapError(c, err)
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

// Logout ends the current session.
func (h *Handlers) Logout(c echo.Context) error {
	cookie, err := h.sessions.Destroy(c.Request().Context(), c.Request())
	if err != nil {
		return mapError(c, err)
	}
	c.SetCookie(cookie)
	return c.NoContent(http.StatusNoContent)
}

// VerifyEmail handles a verification-link visit.
func (h *Handlers) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()

	tok := c.QueryParam("token")
	if tok == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "invalid",
			"message": i18n.T(ctx, "verify_invalid"),
		})
	}

	result, err := h.verification.Confirm(ctx, tok)
	if err != nil {
		return mapError(c, err)
	}

	switch result.Outcome {
	case verification.OutcomeVerified:
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "verified",
			"message": i18n.T(ctx, "verify_success"),
		})
	case verification.OutcomeAlreadyVerified:
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "already_verified",
			"message": i18n.T(ctx, "verify_already_verified"),
		})
	case verification.OutcomeUserGone:
		return c.JSON(http.StatusGone, map[string]string{
			"status":  "user_gone",
			"message": i18n.T(ctx, "verify_user_gone"),
		})
	case verification.OutcomeExpired:
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "expired",
			"message": i18n.T(ctx, "verify_expired"),
			"email":   result.Email,
		})
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "invalid",
			"message": i18n.T(ctx, "verify_invalid"),
		})
	}
}

// ResendRequest is the request body for the verification resend endpoint.
type ResendRequest struct {
	Email string `json:"email"`
}

// ResendVerification re-sends the verification email. The response is the
// same whether or not the address matches an unverified account.
func (h *Handlers) ResendVerification(c echo.Context) error {
	var req ResendRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()

	if err := h.verification.Resend(ctx, req.Email); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"message": i18n.T(ctx, "resend_accepted"),
	})
}

// PasswordResetRequest is the request body for requesting a reset email.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset emails a password reset link. The response is the
// same whether or not the address matches an account.
func (h *Handlers) RequestPasswordReset(c echo.Context) error {
	var req PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()

	if err := h.accounts.RequestPasswordReset(ctx, req.Email); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"message": i18n.T(ctx, "reset_accepted"),
	})
}

// PasswordResetConfirmRequest is the request body for completing a reset.
type PasswordResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ConfirmPasswordReset verifies the reset token and sets a new password.
func (h *Handlers) ConfirmPasswordReset(c echo.Context) error {
	var req PasswordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.accounts.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return mapError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
