package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/service/insight"
	"github.com/sergeifrante-boop/voice-diarty/pkg/ctxutil"
)

type insightService interface {
	EntryInsight(ctx context.Context, userID, entryID uuid.UUID) (*domain.Insight, error)
	PeriodInsight(ctx context.Context, userID uuid.UUID, input insight.PeriodInput) (*domain.Insight, error)
	RegeneratePeriodInsight(ctx context.Context, userID uuid.UUID, input insight.PeriodInput) (*domain.Insight, error)
	List(ctx context.Context, userID uuid.UUID, scope *domain.InsightScope, limit, offset int) ([]*domain.Insight, int, error)
}

// InsightHandler serves generated entry and period insights.
type InsightHandler struct {
	log *slog.Logger
	svc insightService
}

func NewInsightHandler(logger *slog.Logger, svc insightService) *InsightHandler {
	return &InsightHandler{
		log: logger.With("handler", "insight"),
		svc: svc,
	}
}

func (h *InsightHandler) Entry(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	entryID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	ins, err := h.svc.EntryInsight(r.Context(), userID, entryID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, newInsightResponse(ins))
}

func (h *InsightHandler) Period(w http.ResponseWriter, r *http.Request) {
	h.servePeriod(w, r, false)
}

func (h *InsightHandler) RegeneratePeriod(w http.ResponseWriter, r *http.Request) {
	h.servePeriod(w, r, true)
}

func (h *InsightHandler) servePeriod(w http.ResponseWriter, r *http.Request, regenerate bool) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	input, err := parsePeriodInput(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var ins *domain.Insight
	if regenerate {
		ins, err = h.svc.RegeneratePeriodInsight(r.Context(), userID, input)
	} else {
		ins, err = h.svc.PeriodInsight(r.Context(), userID, input)
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, newInsightResponse(ins))
}

func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	q := r.URL.Query()

	var scope *domain.InsightScope
	if v := q.Get("scope"); v != "" {
		s := domain.InsightScope(v)
		scope = &s
	}

	limit, err := parseIntParam(q.Get("limit"), "limit")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	offset, err := parseIntParam(q.Get("offset"), "offset")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	insights, total, err := h.svc.List(r.Context(), userID, scope, limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	items := make([]insightResponse, len(insights))
	for i, ins := range insights {
		items[i] = newInsightResponse(ins)
	}
	if limit <= 0 {
		limit = domain.DefaultEntryLimit
	}
	if limit > domain.MaxEntryLimit {
		limit = domain.MaxEntryLimit
	}

	writeJSON(w, http.StatusOK, insightListResponse{
		Insights: items,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

// parsePeriodInput reads timeframe, optional anchor_date and custom bounds
// from the query string. Bound validation per timeframe happens in the
// service during normalization.
func parsePeriodInput(r *http.Request) (insight.PeriodInput, error) {
	q := r.URL.Query()

	input := insight.PeriodInput{
		Timeframe: domain.Timeframe(q.Get("timeframe")),
	}

	anchor, err := parseDateParam(q.Get("anchor_date"), "anchor_date")
	if err != nil {
		return input, err
	}
	input.Anchor = anchor

	input.From, err = parseDateParam(q.Get("from_date"), "from_date")
	if err != nil {
		return input, err
	}
	input.To, err = parseDateParam(q.Get("to_date"), "to_date")
	if err != nil {
		return input, err
	}

	return input, nil
}

func parseDateParam(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "expected YYYY-MM-DD")
	}
	return &t, nil
}
