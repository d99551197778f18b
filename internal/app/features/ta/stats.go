// internal/app/features/ta/stats.go
package ta

import (
	"context"
	"net/http"

	classroomstore "github.com/dalemusser/noteboard/internal/app/store/classrooms"
	questionstore "github.com/dalemusser/noteboard/internal/app/store/questions"
	"github.com/dalemusser/noteboard/internal/app/system/apierrors"
	"github.com/dalemusser/noteboard/internal/app/system/timeouts"
)

// statsOverview is the dashboard headline block: question totals per
// status plus the overall classroom count.
type statsOverview struct {
	questionstore.StatusCounts
	TotalClassrooms int64 `json:"totalClassrooms"`
}

// ServeStats returns the dashboard aggregates: the overview block plus
// per-category and per-classroom breakdowns, both ordered by count
// descending.
// GET /ta/stats
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts, err := h.Questions.CountByStatus(ctx)
	if err != nil {
		h.ErrLog.ServerError(w, r, "count questions by status failed", err)
		return
	}
	totalClassrooms, err := classroomstore.New(h.DB).Count(ctx)
	if err != nil {
		h.ErrLog.ServerError(w, r, "count classrooms failed", err)
		return
	}
	byCategory, err := h.Questions.CountByCategory(ctx)
	if err != nil {
		h.ErrLog.ServerError(w, r, "count questions by category failed", err)
		return
	}
	byClassroom, err := h.Questions.CountByClassroom(ctx)
	if err != nil {
		h.ErrLog.ServerError(w, r, "count questions by classroom failed", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"overview":             statsOverview{StatusCounts: counts, TotalClassrooms: totalClassrooms},
		"questionsByCategory":  byCategory,
		"questionsByClassroom": byClassroom,
	})
}
