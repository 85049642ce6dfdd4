package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/service/tag"
	"github.com/sergeifrante-boop/voice-diarty/pkg/ctxutil"
)

type tagService interface {
	Cloud(ctx context.Context, userID uuid.UUID) ([]domain.WeightedTag, error)
	Calendar(ctx context.Context, userID uuid.UUID, month string) ([]tag.CalendarDay, error)
}

// TagHandler serves the tag cloud and the month calendar views.
type TagHandler struct {
	log *slog.Logger
	svc tagService
}

func NewTagHandler(logger *slog.Logger, svc tagService) *TagHandler {
	return &TagHandler{
		log: logger.With("handler", "tag"),
		svc: svc,
	}
}

type tagCloudResponse struct {
	Tags []domain.WeightedTag `json:"tags"`
}

func (h *TagHandler) Cloud(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	tags, err := h.svc.Cloud(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, tagCloudResponse{Tags: tags})
}

type calendarResponse struct {
	Month string            `json:"month"`
	Days  []tag.CalendarDay `json:"days"`
}

func (h *TagHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, r, h.log, domain.NewValidationError("month", "required, expected YYYY-MM"))
		return
	}

	days, err := h.svc.Calendar(r.Context(), userID, month)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if days == nil {
		days = []tag.CalendarDay{}
	}

	writeJSON(w, http.StatusOK, calendarResponse{Month: month, Days: days})
}
