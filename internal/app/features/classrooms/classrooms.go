// internal/app/features/classrooms/classrooms.go
package classrooms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	classroomstore "github.com/dalemusser/noteboard/internal/app/store/classrooms"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/authz"
	"github.com/dalemusser/noteboard/internal/app/system/sanitize"
	"github.com/dalemusser/noteboard/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createClassroomInput struct {
	Name string `json:"name"`
}

// HandleCreate creates a classroom owned by the signed-in teacher. The
// join code is generated server side.
// POST /classroom
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, teacherID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Write(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var in createClassroomInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.BadRequest(w, r, "decode classroom body failed", err, "Invalid request body")
		return
	}

	name := sanitize.Plain(strings.TrimSpace(in.Name))
	if name == "" {
		apierrors.Write(w, http.StatusBadRequest, "Classroom name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	classroom, err := h.Classrooms.Create(ctx, name, teacherID)
	if err != nil {
		if errors.Is(err, classroomstore.ErrCodeExhausted) {
			h.ErrLog.ServerError(w, r, "classroom code generation exhausted", err)
			return
		}
		h.ErrLog.ServerError(w, r, "create classroom failed", err)
		return
	}

	h.Log.Info("classroom created",
		zap.String("classroom_id", classroom.ID.Hex()),
		zap.String("code", classroom.Code))
	apierrors.WriteJSON(w, http.StatusCreated, classroom)
}

// ServeList returns the signed-in teacher's classrooms, newest first.
// GET /classroom
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, teacherID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Write(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Classrooms.ListByTeacher(ctx, teacherID)
	if err != nil {
		h.ErrLog.ServerError(w, r, "list classrooms failed", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, list)
}

// ServeByCode resolves a classroom by its join code. Public: students use
// this to find the board behind a code their teacher shared.
// GET /classroom/code/{code}
func (h *Handler) ServeByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		apierrors.Write(w, http.StatusBadRequest, "Classroom code is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	classroom, err := h.Classrooms.GetByCode(ctx, code)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.NotFound(w, "Classroom not found")
		return
	}
	if err != nil {
		h.ErrLog.ServerError(w, r, "lookup classroom by code failed", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, classroom)
}
