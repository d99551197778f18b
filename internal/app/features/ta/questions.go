// internal/app/features/ta/questions.go
package ta

import (
	"context"
	"net/http"

	classroomstore "github.com/dalemusser/noteboard/internal/app/store/classrooms"
	questionstore "github.com/dalemusser/noteboard/internal/app/store/questions"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/paging"
	"github.com/dalemusser/noteboard/internal/app/system/timeouts"
	"github.com/dalemusser/noteboard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeQuestions lists questions across all classrooms with filtering,
// sorting, and offset pagination.
// GET /ta/questions?page=&limit=&status=&classroomId=&sortBy=&sortOrder=
func (h *Handler) ServeQuestions(w http.ResponseWriter, r *http.Request) {
	status := query.Get(r, "status")
	if status == "all" {
		status = ""
	}
	if status != "" && !models.IsValidQuestionStatus(status) {
		apierrors.Write(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	classroomID := query.Get(r, "classroomId")
	if classroomID == "all" {
		classroomID = ""
	}

	filter := questionstore.Filter{
		Page:        paging.ParsePage(r),
		Limit:       paging.ParseLimit(r),
		Status:      status,
		ClassroomID: classroomID,
		SortBy:      query.Get(r, "sortBy"),
		SortOrder:   query.Get(r, "sortOrder"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	questions, total, err := h.Questions.List(ctx, filter)
	if err != nil {
		h.ErrLog.ServerError(w, r, "list questions failed", err)
		return
	}

	// The filter UI wants every classroom, not just those on this page.
	classrooms, err := classroomstore.New(h.DB).ListSummaries(ctx)
	if err != nil {
		h.ErrLog.ServerError(w, r, "list classrooms failed", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"questions":  questions,
		"pagination": paging.NewMeta(filter.Page, filter.Limit, total),
		"filters": map[string]any{
			"classrooms": classrooms,
			// "all" leads so the UI's default filter option round-trips.
			"statuses": append([]string{"all"}, models.QuestionStatuses...),
		},
	})
}
