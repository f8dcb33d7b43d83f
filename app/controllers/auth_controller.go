// Package controllers holds the HTTP handlers. Controllers bind and validate
// input, call a service, and own the client-facing wording of every response.
package controllers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendora/app/models"
	"vendora/app/repositories"
	"vendora/app/services"
	"vendora/app/views"
	"vendora/config"
	"vendora/pkg/bind"
	"vendora/pkg/logger"
	"vendora/pkg/middleware"
	"vendora/pkg/response"
	"vendora/pkg/validate"
)

// AuthController handles signup, login, email verification, and the
// password reset flow.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Signup handles POST /api/auth/signup.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var in models.SignupInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.BadRequest(w, validate.First(errs))
		return
	}

	if err := c.auth.Signup(r.Context(), in); err != nil {
		if errors.Is(err, services.ErrAlreadyRegistered) {
			response.BadRequest(w, "User already registered")
			return
		}
		logger.WithCtx(r.Context()).Error("signup failed", "error", err)
		response.Internal(w)
		return
	}

	response.OK(w, "Your account has been created")
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.BadRequest(w, validate.First(errs))
		return
	}

	result, err := c.auth.Login(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.BadRequest(w, "Invalide email or password")
			return
		}
		if errors.Is(err, services.ErrEmailNotVerified) {
			response.BadRequest(w, "Email is not verified. Please check your email to verify your account")
			return
		}
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "Login Successfully", result)
}

// VerifyEmail handles GET /api/auth/authentication/{token}.
func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.Unauthorized(w, "Access denied. No token provided")
		return
	}

	if err := c.auth.VerifyEmail(r.Context(), token); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			response.BadRequest(w, "Invalide token")
			return
		}
		logger.WithCtx(r.Context()).Error("email verification failed", "error", err)
		response.Internal(w)
		return
	}

	response.OK(w, "Email verified successfully")
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in models.ForgotPasswordInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.BadRequest(w, validate.First(errs))
		return
	}

	if err := c.auth.ForgotPassword(r.Context(), in); err != nil {
		if errors.Is(err, services.ErrEmailNotFound) {
			response.BadRequest(w, "User not found with this given email")
			return
		}
		logger.WithCtx(r.Context()).Error("forgot password failed", "error", err)
		response.Internal(w)
		return
	}

	response.OK(w, "Check your email to reset your password")
}

// ResetPasswordForm handles GET /api/auth/reset-password/{token} and renders
// the form where the user types a new password.
func (c *AuthController) ResetPasswordForm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.Unauthorized(w, "Access denied. No token provided")
		return
	}

	if err := c.auth.ValidateResetToken(token); err != nil {
		response.BadRequest(w, "Invalid token")
		return
	}

	var buf bytes.Buffer
	if err := views.ResetPasswordForm(&buf, token, config.BaseURL()); err != nil {
		logger.WithCtx(r.Context()).Error("render reset form failed", "error", err)
		response.Internal(w)
		return
	}
	response.HTML(w, http.StatusOK, buf.Bytes())
}

// ResetPassword handles POST /api/auth/reset-password/{token}.
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.Unauthorized(w, "Access denied. No token provided")
		return
	}

	var in models.ResetPasswordInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.BadRequest(w, validate.First(errs))
		return
	}

	if err := c.auth.ResetPassword(r.Context(), token, in.Password); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			response.BadRequest(w, "Invalid token")
			return
		}
		logger.WithCtx(r.Context()).Error("password reset failed", "error", err)
		response.Internal(w)
		return
	}

	var buf bytes.Buffer
	if err := views.PasswordResetSuccess(&buf); err != nil {
		logger.WithCtx(r.Context()).Error("render reset success failed", "error", err)
		response.Internal(w)
		return
	}
	response.HTML(w, http.StatusOK, buf.Bytes())
}

// Me handles GET /api/auth/me. Requires a session token.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Access denied. No token provided")
		return
	}

	user, err := c.auth.Me(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		logger.WithCtx(r.Context()).Error("me lookup failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "User fetched successfully", user)
}
