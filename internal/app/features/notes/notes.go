// internal/app/features/notes/notes.go
package notes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/authz"
	"github.com/dalemusser/noteboard/internal/app/system/sanitize"
	"github.com/dalemusser/noteboard/internal/app/system/timeouts"
	"github.com/dalemusser/noteboard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type createNoteInput struct {
	Question string `json:"question"`
	// Older clients post the note body as "text".
	Text     string `json:"text"`
	Author   string `json:"author"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

// classroomID resolves the classroom from the URL. Writes the error
// response and returns ok=false when the classroom does not exist.
func (h *Handler) classroomID(ctx context.Context, w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "classroomID"))
	if err != nil {
		h.ErrLog.NotFound(w, "Classroom not found")
		return primitive.NilObjectID, false
	}

	if _, err := h.Classrooms.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.NotFound(w, "Classroom not found")
			return primitive.NilObjectID, false
		}
		h.ErrLog.ServerError(w, r, "load classroom failed", err)
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeList returns the classroom's questions, newest first, optionally
// filtered by status.
// GET /classrooms/{classroomID}/notes?filter=all|unanswered|answered|important
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	classroomID, ok := h.classroomID(ctx, w, r)
	if !ok {
		return
	}

	status := query.Get(r, "filter")
	if status == "all" {
		status = ""
	}
	if status != "" && !models.IsValidQuestionStatus(status) {
		apierrors.Write(w, http.StatusBadRequest, "Invalid filter")
		return
	}

	notes, err := h.Questions.ListByClassroom(ctx, classroomID, status)
	if err != nil {
		h.ErrLog.ServerError(w, r, "list notes failed", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, notes)
}

// HandleCreate posts a new sticky note to the board. No authentication:
// students are anonymous beyond the name they type in.
// POST /classrooms/{classroomID}/notes
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	classroomID, ok := h.classroomID(ctx, w, r)
	if !ok {
		return
	}

	var in createNoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.ErrLog.BadRequest(w, r, "decode note body failed", err, "Invalid request body")
		return
	}

	text := in.Question
	if text == "" {
		text = in.Text
	}
	text = sanitize.Plain(strings.TrimSpace(text))
	if text == "" {
		apierrors.Write(w, http.StatusBadRequest, "Question text is required")
		return
	}

	author := sanitize.Plain(strings.TrimSpace(in.Author))
	if author == "" {
		author = "Anonymous"
	}

	created, err := h.Questions.Create(ctx, models.Question{
		Text:        text,
		Author:      author,
		Color:       sanitize.Plain(in.Color),
		Category:    sanitize.Plain(in.Category),
		ClassroomID: classroomID,
	})
	if err != nil {
		h.ErrLog.ServerError(w, r, "create note failed", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, created)
}

// HandleMarkImportant pins a question: the teacher override sets status
// to important regardless of whether it has an answer. Answering again
// moves it back to answered.
// PATCH /classrooms/{classroomID}/notes/{questionID}/important
func (h *Handler) HandleMarkImportant(w http.ResponseWriter, r *http.Request) {
	if !authz.IsTeacher(r) {
		h.ErrLog.Forbidden(w, "Teacher access required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	classroomID, ok := h.classroomID(ctx, w, r)
	if !ok {
		return
	}

	qid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "questionID"))
	if err != nil {
		h.ErrLog.NotFound(w, "Question not found")
		return
	}

	q, err := h.Questions.GetByID(ctx, qid)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.NotFound(w, "Question not found")
		return
	}
	if err != nil {
		h.ErrLog.ServerError(w, r, "load question failed", err)
		return
	}
	if q.ClassroomID != classroomID {
		h.ErrLog.NotFound(w, "Question not found")
		return
	}

	if err := h.Questions.SetStatus(ctx, qid, models.StatusImportant); err != nil {
		h.ErrLog.ServerError(w, r, "mark question important failed", err)
		return
	}

	updated, err := h.Questions.GetByID(ctx, qid)
	if err != nil {
		h.ErrLog.ServerError(w, r, "reload question failed", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, updated)
}
