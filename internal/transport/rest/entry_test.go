package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/service/entry"
	"github.com/sergeifrante-boop/voice-diarty/pkg/ctxutil"
)

type entryServiceMock struct {
	CreateFunc func(ctx context.Context, userID uuid.UUID, input entry.CreateInput) (*domain.Entry, error)
	ListFunc   func(ctx context.Context, userID uuid.UUID, f domain.EntryFilter) ([]*domain.Entry, int, error)
	GetFunc    func(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error)
	DeleteFunc func(ctx context.Context, userID, entryID uuid.UUID) error
}

func (m *entryServiceMock) Create(ctx context.Context, userID uuid.UUID, input entry.CreateInput) (*domain.Entry, error) {
	return m.CreateFunc(ctx, userID, input)
}

func (m *entryServiceMock) List(ctx context.Context, userID uuid.UUID, f domain.EntryFilter) ([]*domain.Entry, int, error) {
	return m.ListFunc(ctx, userID, f)
}

func (m *entryServiceMock) Get(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error) {
	return m.GetFunc(ctx, userID, entryID)
}

func (m *entryServiceMock) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	return m.DeleteFunc(ctx, userID, entryID)
}

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := ctxutil.WithUserID(req.Context(), uuid.New())
	return req.WithContext(ctx)
}

func TestEntryHandler_Create(t *testing.T) {
	svc := &entryServiceMock{
		CreateFunc: func(ctx context.Context, userID uuid.UUID, input entry.CreateInput) (*domain.Entry, error) {
			return &domain.Entry{
				ID:         uuid.New(),
				UserID:     userID,
				Transcript: input.Transcript,
				MoodLabel:  domain.DefaultMoodLabel,
				CreatedAt:  time.Now().UTC(),
			}, nil
		},
	}
	h := NewEntryHandler(testLogger(), svc)

	req := authedRequest(http.MethodPost, "/api/v1/entries", `{"transcript":"Сегодня был хороший день."}`)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}

	var resp entryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Transcript != "Сегодня был хороший день." {
		t.Errorf("transcript = %q", resp.Transcript)
	}
	if resp.Tags == nil || resp.Insights == nil {
		t.Error("tags and insights must serialize as empty arrays, not null")
	}
}

func TestEntryHandler_Create_Unauthenticated(t *testing.T) {
	h := NewEntryHandler(testLogger(), &entryServiceMock{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", strings.NewReader(`{"transcript":"x"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestEntryHandler_List_FilterAndPreview(t *testing.T) {
	longTranscript := strings.Repeat("ш", 150)

	var gotFilter domain.EntryFilter
	svc := &entryServiceMock{
		ListFunc: func(ctx context.Context, userID uuid.UUID, f domain.EntryFilter) ([]*domain.Entry, int, error) {
			gotFilter = f
			return []*domain.Entry{
				{ID: uuid.New(), Transcript: longTranscript, MoodLabel: "calm", CreatedAt: time.Now().UTC()},
				{ID: uuid.New(), Transcript: "короткая запись", MoodLabel: "calm", CreatedAt: time.Now().UTC()},
			}, 2, nil
		},
	}
	h := NewEntryHandler(testLogger(), svc)

	req := authedRequest(http.MethodGet, "/api/v1/entries?date_from=2024-05-01&date_to=2024-05-31&tag=работа&limit=10&offset=5", "")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	if gotFilter.DateFrom == nil || !gotFilter.DateFrom.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DateFrom = %v", gotFilter.DateFrom)
	}
	if gotFilter.DateTo == nil || gotFilter.DateTo.Day() != 31 {
		t.Errorf("DateTo = %v", gotFilter.DateTo)
	}
	if gotFilter.Tag == nil || *gotFilter.Tag != "работа" {
		t.Errorf("Tag = %v", gotFilter.Tag)
	}
	if gotFilter.Limit != 10 || gotFilter.Offset != 5 {
		t.Errorf("Limit/Offset = %d/%d", gotFilter.Limit, gotFilter.Offset)
	}

	var resp entryListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("total = %d", resp.Total)
	}

	preview := resp.Entries[0].TranscriptPreview
	if wantLen := transcriptPreviewChars + 3; len([]rune(preview)) != wantLen {
		t.Errorf("preview rune length = %d, want %d", len([]rune(preview)), wantLen)
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("long preview must end with ellipsis: %q", preview)
	}
	if resp.Entries[1].TranscriptPreview != "короткая запись" {
		t.Errorf("short transcript must pass through: %q", resp.Entries[1].TranscriptPreview)
	}
}

func TestEntryHandler_List_BadDate(t *testing.T) {
	h := NewEntryHandler(testLogger(), &entryServiceMock{})

	req := authedRequest(http.MethodGet, "/api/v1/entries?date_from=yesterday", "")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestEntryHandler_Get_InvalidID(t *testing.T) {
	h := NewEntryHandler(testLogger(), &entryServiceMock{})

	req := authedRequest(http.MethodGet, "/api/v1/entries/not-a-uuid", "")
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestEntryHandler_Delete_NotFound(t *testing.T) {
	svc := &entryServiceMock{
		DeleteFunc: func(ctx context.Context, userID, entryID uuid.UUID) error {
			return domain.ErrNotFound
		},
	}
	h := NewEntryHandler(testLogger(), svc)

	id := uuid.New()
	req := authedRequest(http.MethodDelete, "/api/v1/entries/"+id.String(), "")
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
