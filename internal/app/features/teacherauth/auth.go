// internal/app/features/teacherauth/auth.go
package teacherauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	teacherstore "github.com/dalemusser/noteboard/internal/app/store/teachers"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/authn"
	"github.com/dalemusser/noteboard/internal/app/system/timeouts"
	"github.com/dalemusser/noteboard/internal/domain/models"
	"go.uber.org/zap"
)

type signupInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup creates a teacher account.
// POST /teachers
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var in signupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.BadRequest(w, r, "decode signup body failed", err, "Invalid request body")
		return
	}

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		apierrors.Write(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if len(in.Password) < 6 {
		apierrors.Write(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := authn.HashPassword(in.Password)
	if err != nil {
		h.ErrLog.ServerError(w, r, "hash password failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Teachers.Create(ctx, models.Teacher{
		Username:     in.Username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, teacherstore.ErrDuplicateUsername) {
			apierrors.Write(w, http.StatusBadRequest, err.Error())
			return
		}
		h.ErrLog.ServerError(w, r, "create teacher failed", err)
		return
	}

	h.Log.Info("teacher registered", zap.String("username", created.Username))
	apierrors.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Teacher registered successfully",
		"teacher": map[string]string{
			"id":       created.ID.Hex(),
			"username": created.Username,
		},
	})
}

// HandleLogin authenticates a teacher or TA by password and starts a
// session. Both principal types go through the same authenticator, so a
// session issued here is indistinguishable from one issued by /ta/login.
// POST /login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.BadRequest(w, r, "decode login body failed", err, "Invalid request body")
		return
	}

	login := strings.TrimSpace(in.Username)
	if login == "" {
		login = strings.TrimSpace(in.Email)
	}
	if login == "" || in.Password == "" {
		apierrors.Write(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Auth.Authenticate(ctx, login, in.Password)
	if err == authn.ErrInvalidCredentials {
		apierrors.Write(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.ErrLog.ServerError(w, r, "login failed", err)
		return
	}

	if err := h.Sessions.SignIn(w, r, p.ID.Hex(), p.Role); err != nil {
		h.ErrLog.ServerError(w, r, "save session failed", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user": map[string]string{
			"id":       p.ID.Hex(),
			"username": p.Username,
			"role":     p.Role,
		},
	})
}

// HandleLogout ends the current session.
// POST /logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.ErrLog.ServerError(w, r, "sign out failed", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
