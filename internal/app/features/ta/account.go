// internal/app/features/ta/account.go
package ta

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	tastore "github.com/dalemusser/noteboard/internal/app/store/tas"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/authn"
	"github.com/dalemusser/noteboard/internal/app/system/authz"
	"github.com/dalemusser/noteboard/internal/app/system/timeouts"
	"github.com/dalemusser/noteboard/internal/domain/models"
	"go.uber.org/zap"
)

type registerInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// taProfile is the wire shape of a TA account. The password hash never
// leaves the server.
type taProfile struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  string  `json:"fullName"`
	IsActive  bool    `json:"isActive"`
	LastLogin *string `json:"lastLogin"`
}

func profileOf(ta *models.TeachingAssistant) taProfile {
	p := taProfile{
		ID:       ta.ID.Hex(),
		Username: ta.Username,
		Email:    ta.Email,
		FullName: ta.FullName,
		IsActive: ta.IsActive,
	}
	if ta.LastLogin != nil {
		s := ta.LastLogin.UTC().Format("2006-01-02T15:04:05.000Z")
		p.LastLogin = &s
	}
	return p
}

// HandleRegister creates a new TA account.
// POST /ta/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.BadRequest(w, r, "decode register body failed", err, "Invalid request body")
		return
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	switch {
	case in.Username == "" || in.Email == "" || in.Password == "" || in.FullName == "":
		apierrors.Write(w, http.StatusBadRequest, "All fields are required")
		return
	case len(in.Password) < 6:
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

	created, err := h.TAs.Create(ctx, models.TeachingAssistant{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
	})
	if err != nil {
		if errors.Is(err, tastore.ErrDuplicateUsername) || errors.Is(err, tastore.ErrDuplicateEmail) {
			apierrors.Write(w, http.StatusBadRequest, err.Error())
			return
		}
		h.ErrLog.ServerError(w, r, "create TA failed", err)
		return
	}

	h.Log.Info("TA registered", zap.String("username", created.Username))
	apierrors.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "TA registered successfully",
		"ta":      profileOf(&created),
	})
}

// HandleLogin authenticates a TA by username-or-email and starts a session.
// POST /ta/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.BadRequest(w, r, "decode login body failed", err, "Invalid request body")
		return
	}
	if in.Username == "" || in.Password == "" {
		apierrors.Write(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Auth.Authenticate(ctx, in.Username, in.Password)
	if err == authn.ErrInvalidCredentials {
		apierrors.Write(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.ErrLog.ServerError(w, r, "TA login failed", err)
		return
	}
	if p.Role != authn.RoleTA {
		// The shared authenticator can match a teacher. This endpoint
		// only issues TA sessions.
		apierrors.Write(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.Sessions.SignIn(w, r, p.ID.Hex(), p.Role); err != nil {
		h.ErrLog.ServerError(w, r, "save session failed", err)
		return
	}

	ta, err := h.TAs.GetByID(ctx, p.ID)
	if err != nil {
		h.ErrLog.ServerError(w, r, "load TA after login failed", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"ta":      profileOf(ta),
	})
}

// HandleLogout ends the current session.
// POST /ta/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.ErrLog.ServerError(w, r, "sign out failed", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// ServeProfile returns the signed-in TA's account.
// GET /ta/profile
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, taID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Write(w, http.StatusUnauthorized, "TA authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ta, err := h.TAs.GetByID(ctx, taID)
	if err != nil {
		h.ErrLog.ServerError(w, r, "load TA profile failed", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{"ta": profileOf(ta)})
}
