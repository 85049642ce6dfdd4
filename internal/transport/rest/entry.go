package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/service/entry"
	"github.com/sergeifrante-boop/voice-diarty/pkg/ctxutil"
)

type entryService interface {
	Create(ctx context.Context, userID uuid.UUID, input entry.CreateInput) (*domain.Entry, error)
	List(ctx context.Context, userID uuid.UUID, f domain.EntryFilter) ([]*domain.Entry, int, error)
	Get(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}

// EntryHandler serves diary entry CRUD endpoints.
type EntryHandler struct {
	log *slog.Logger
	svc entryService
}

func NewEntryHandler(logger *slog.Logger, svc entryService) *EntryHandler {
	return &EntryHandler{
		log: logger.With("handler", "entry"),
		svc: svc,
	}
}

type createEntryRequest struct {
	Transcript string `json:"transcript"`
}

func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	e, err := h.svc.Create(r.Context(), userID, entry.CreateInput{Transcript: req.Transcript})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, newEntryResponse(e))
}

func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	filter, err := parseEntryFilter(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	entries, total, err := h.svc.List(r.Context(), userID, filter)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	summaries := make([]entrySummary, len(entries))
	for i, e := range entries {
		summaries[i] = newEntrySummary(e)
	}

	filter.Normalize()
	writeJSON(w, http.StatusOK, entryListResponse{
		Entries: summaries,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
}

func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	e, err := h.svc.Get(r.Context(), userID, entryID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, newEntryResponse(e))
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Delete(r.Context(), userID, entryID); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func parseEntryFilter(r *http.Request) (domain.EntryFilter, error) {
	q := r.URL.Query()
	var f domain.EntryFilter

	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, domain.NewValidationError("date_from", "expected YYYY-MM-DD")
		}
		f.DateFrom = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, domain.NewValidationError("date_to", "expected YYYY-MM-DD")
		}
		// make the upper bound inclusive for the whole day
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &end
	}
	if v := q.Get("tag"); v != "" {
		f.Tag = &v
	}

	var err error
	if f.Limit, err = parseIntParam(q.Get("limit"), "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = parseIntParam(q.Get("offset"), "offset"); err != nil {
		return f, err
	}

	return f, nil
}

func parseIntParam(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(field, "expected a non-negative integer")
	}
	return n, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "invalid UUID")
	}
	return id, nil
}
