// internal/app/features/ta/answer.go
package ta

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/authz"
	"github.com/dalemusser/noteboard/internal/app/system/sanitize"
	"github.com/dalemusser/noteboard/internal/app/system/timeouts"
	"github.com/dalemusser/noteboard/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleAnswer submits the first answer to a question. The request is
// multipart form data with an "answer" text field and up to five files in
// the "attachments" field.
// POST /ta/answer/{questionID}
func (h *Handler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	_, _, taID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Write(w, http.StatusUnauthorized, "TA authentication required")
		return
	}

	qid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "questionID"))
	if err != nil {
		apierrors.Write(w, http.StatusNotFound, "Question not found")
		return
	}

	answer, files, ok := h.parseAnswerForm(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	q, err := h.Questions.GetByID(ctx, qid)
	if err == mongo.ErrNoDocuments {
		apierrors.Write(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		h.ErrLog.ServerError(w, r, "load question failed", err)
		return
	}
	if q.TAAnswer != nil {
		apierrors.Write(w, http.StatusBadRequest, "Question has already been answered")
		return
	}

	attachments, ok := h.storeAttachments(ctx, w, r, files)
	if !ok {
		return
	}

	ans := models.TAAnswer{
		Answer:      answer,
		AnsweredBy:  taID,
		AnsweredAt:  time.Now().UTC(),
		Attachments: attachments,
	}
	if err := h.Questions.SetAnswer(ctx, qid, ans); err != nil {
		h.cleanupAttachments(ctx, attachments)
		if err == mongo.ErrNoDocuments {
			// The question existed a moment ago, so another answer
			// landed between our read and the write.
			apierrors.Write(w, http.StatusBadRequest, "Question has already been answered")
			return
		}
		h.ErrLog.ServerError(w, r, "save answer failed", err)
		return
	}

	updated, err := h.Questions.GetByID(ctx, qid)
	if err != nil {
		h.ErrLog.ServerError(w, r, "reload question failed", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "Answer submitted successfully",
		"question": updated,
	})
}

// HandleUpdateAnswer revises an existing answer. Only the TA who wrote
// the original answer may update it. Supplying files replaces the whole
// attachment set; supplying none keeps the existing set.
// PUT /ta/answer/{questionID}
func (h *Handler) HandleUpdateAnswer(w http.ResponseWriter, r *http.Request) {
	_, _, taID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Write(w, http.StatusUnauthorized, "TA authentication required")
		return
	}

	qid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "questionID"))
	if err != nil {
		apierrors.Write(w, http.StatusNotFound, "Question not found")
		return
	}

	answer, files, ok := h.parseAnswerForm(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	q, err := h.Questions.GetByID(ctx, qid)
	if err == mongo.ErrNoDocuments {
		apierrors.Write(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		h.ErrLog.ServerError(w, r, "load question failed", err)
		return
	}
	if q.TAAnswer == nil {
		apierrors.Write(w, http.StatusBadRequest, "Question has no TA answer to update")
		return
	}
	if q.TAAnswer.AnsweredBy != taID {
		h.ErrLog.Forbidden(w, "You can only update your own answers")
		return
	}

	// nil means keep the existing attachments; a non-nil slice replaces
	// them outright.
	var attachments []models.Attachment
	if len(files) > 0 {
		attachments, ok = h.storeAttachments(ctx, w, r, files)
		if !ok {
			return
		}
	}

	if err := h.Questions.UpdateAnswer(ctx, qid, answer, time.Now().UTC(), attachments); err != nil {
		h.cleanupAttachments(ctx, attachments)
		if err == mongo.ErrNoDocuments {
			apierrors.Write(w, http.StatusBadRequest, "Question has no TA answer to update")
			return
		}
		h.ErrLog.ServerError(w, r, "update answer failed", err)
		return
	}

	// The replaced files are unreferenced now.
	if attachments != nil {
		h.cleanupAttachments(ctx, q.TAAnswer.Attachments)
	}

	updated, err := h.Questions.GetByID(ctx, qid)
	if err != nil {
		h.ErrLog.ServerError(w, r, "reload question failed", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "Answer updated successfully",
		"question": updated,
	})
}

// parseAnswerForm extracts the answer text and attachment file headers
// from a multipart request. It writes the error response itself and
// returns ok=false when the request is invalid.
func (h *Handler) parseAnswerForm(w http.ResponseWriter, r *http.Request) (string, []*multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
		h.ErrLog.BadRequest(w, r, "parse answer form failed", err, "Invalid form data")
		return "", nil, false
	}

	answer := sanitize.Rich(strings.TrimSpace(r.FormValue("answer")))
	if answer == "" {
		apierrors.Write(w, http.StatusBadRequest, "Answer text is required")
		return "", nil, false
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["attachments"]
	}
	if len(files) > maxAttachments {
		apierrors.Write(w, http.StatusBadRequest, "Maximum 5 attachments allowed")
		return "", nil, false
	}
	return answer, files, true
}

// storeAttachments uploads each file and returns the recorded metadata.
// On any failure the files stored so far are removed and a 500 is written.
func (h *Handler) storeAttachments(ctx context.Context, w http.ResponseWriter, r *http.Request, files []*multipart.FileHeader) ([]models.Attachment, bool) {
	attachments := make([]models.Attachment, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.cleanupAttachments(ctx, attachments)
			h.ErrLog.ServerError(w, r, "open attachment failed", err)
			return nil, false
		}
		att, err := uploadAttachment(ctx, h.Storage, fh.Filename, f, fh.Size, fh.Header.Get("Content-Type"))
		f.Close()
		if err != nil {
			h.cleanupAttachments(ctx, attachments)
			h.ErrLog.ServerError(w, r, "store attachment failed", err)
			return nil, false
		}
		attachments = append(attachments, att)
	}
	return attachments, true
}

// cleanupAttachments best-effort deletes stored files that ended up
// unreferenced.
func (h *Handler) cleanupAttachments(ctx context.Context, attachments []models.Attachment) {
	for _, att := range attachments {
		if err := h.Storage.Delete(ctx, att.Path); err != nil {
			h.Log.Warn("failed to delete orphaned attachment",
				zap.String("path", att.Path),
				zap.Error(err))
		}
	}
}
