package authhandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffsync/internal/domain/auth"
	"staffsync/internal/transport/http/api"
	"staffsync/internal/transport/http/middleware"
	"staffsync/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Portal   string `json:"portal" validate:"required,oneof=hr employee"`
}

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type accountResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type meResponse struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId,omitempty"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/register", h.handleRegister)
		r.With(middleware.RequireUser).Post("/logout", h.handleLogout)
		r.With(middleware.RequireUser).Get("/me", h.handleMe)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	payload.Portal = strings.ToLower(strings.TrimSpace(payload.Portal))
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	res, err := h.Service.Login(r.Context(), auth.Portal(payload.Portal), payload.Email, payload.Password)
	switch {
	case err == nil:
		api.Success(w, res, reqID)
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "Incorrect credentials. Please try again.", reqID)
	case errors.Is(err, auth.ErrNoEmployeeAccount):
		api.Fail(w, http.StatusUnauthorized, "no_employee_account", "No employee account found for this email.", reqID)
	case errors.Is(err, auth.ErrWrongPortal):
		api.Fail(w, http.StatusForbidden, "wrong_portal", "This account cannot sign in to the HR portal.", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload registerRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	acct, err := h.Service.Register(r.Context(), payload.Email, payload.Password, payload.ConfirmPassword)
	switch {
	case err == nil:
		api.Created(w, accountResponse{ID: acct.ID, Email: acct.Email, Role: acct.Role}, reqID)
	case errors.Is(err, auth.ErrPasswordMismatch):
		api.Fail(w, http.StatusBadRequest, "password_mismatch", "Passwords do not match.", reqID)
	case errors.Is(err, auth.ErrWeakPassword):
		api.Fail(w, http.StatusBadRequest, "weak_password", "Password should be at least 6 characters.", reqID)
	case errors.Is(err, auth.ErrNotPreRegistered):
		api.Fail(w, http.StatusForbidden, "not_pre_registered", "This email has not been pre-registered by HR. Please contact your administrator.", reqID)
	case errors.Is(err, auth.ErrAccountExists):
		api.Fail(w, http.StatusConflict, "account_exists", "An account already exists for this email.", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "register_failed", "An unexpected error occurred. Please try again.", reqID)
	}
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Logout(r.Context(), user.SessionID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "logout_failed", "logout failed", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "logged_out"}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	out := meResponse{UserID: user.UserID, Email: user.Email, Role: user.Role}
	if user.Role == auth.RoleEmployee {
		out.EmployeeID, _ = middleware.EmployeeID(r.Context())
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}
