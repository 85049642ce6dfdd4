package tag

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

func entryWithTags(createdAt time.Time, title string, tags ...string) *domain.Entry {
	e := &domain.Entry{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: createdAt,
	}
	for _, name := range tags {
		e.Tags = append(e.Tags, domain.Tag{Name: name})
	}
	return e
}

func TestAggregateTagCloud(t *testing.T) {
	t.Parallel()

	now := time.Now()
	entries := []*domain.Entry{
		entryWithTags(now, "a", "работа", "усталость"),
		entryWithTags(now, "b", "работа"),
		entryWithTags(now, "c", "спорт"),
	}

	cloud := AggregateTagCloud(entries)

	want := []domain.WeightedTag{
		{Tag: "работа", Weight: 2},
		{Tag: "спорт", Weight: 1},
		{Tag: "усталость", Weight: 1},
	}
	if len(cloud) != len(want) {
		t.Fatalf("cloud = %+v", cloud)
	}
	for i := range want {
		if cloud[i] != want[i] {
			t.Errorf("cloud[%d] = %+v, want %+v", i, cloud[i], want[i])
		}
	}
}

func TestAggregateTagCloud_Empty(t *testing.T) {
	t.Parallel()

	if cloud := AggregateTagCloud(nil); len(cloud) != 0 {
		t.Errorf("cloud = %+v, want empty", cloud)
	}
}

func TestAggregateCalendar(t *testing.T) {
	t.Parallel()

	day1Morning := time.Date(2024, 5, 13, 9, 15, 0, 0, time.UTC)
	day1Evening := time.Date(2024, 5, 13, 21, 40, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	entries := []*domain.Entry{
		entryWithTags(day1Morning, "Утро", "кофе"),
		entryWithTags(day1Evening, "Вечер"),
		entryWithTags(day2, "Середина недели"),
	}

	days := AggregateCalendar(entries)

	if len(days) != 2 {
		t.Fatalf("days = %+v", days)
	}
	if days[0].Date != "2024-05-13" || days[1].Date != "2024-05-15" {
		t.Errorf("day order: %q, %q", days[0].Date, days[1].Date)
	}
	if len(days[0].Entries) != 2 {
		t.Fatalf("day 1 entries = %+v", days[0].Entries)
	}
	// Within-day order follows input order.
	if days[0].Entries[0].Title != "Утро" || days[0].Entries[1].Title != "Вечер" {
		t.Errorf("within-day order broken: %+v", days[0].Entries)
	}
	if days[0].Entries[0].Time != "09:15" {
		t.Errorf("time = %q, want 09:15", days[0].Entries[0].Time)
	}
	if got := days[0].Entries[0].Tags; len(got) != 1 || got[0] != "кофе" {
		t.Errorf("tags = %v", got)
	}
}

type entryRepoMock struct {
	ListByPeriodFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Entry, error)
}

func (m *entryRepoMock) ListByPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Entry, error) {
	return m.ListByPeriodFunc(ctx, userID, from, to)
}

type tagRepoMock struct {
	CloudByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.WeightedTag, error)
}

func (m *tagRepoMock) CloudByUser(ctx context.Context, userID uuid.UUID) ([]domain.WeightedTag, error) {
	return m.CloudByUserFunc(ctx, userID)
}

func TestService_Calendar_MonthBounds(t *testing.T) {
	t.Parallel()

	var gotFrom, gotTo time.Time
	entries := &entryRepoMock{
		ListByPeriodFunc: func(_ context.Context, _ uuid.UUID, from, to time.Time) ([]*domain.Entry, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, &tagRepoMock{}, entries)

	if _, err := svc.Calendar(context.Background(), uuid.New(), "2024-12"); err != nil {
		t.Fatalf("Calendar: %v", err)
	}

	wantFrom := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	if !gotFrom.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", gotFrom, wantFrom)
	}
	// December rolls over into next year, bound stays inside December.
	if !gotTo.Before(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) || gotTo.Month() != time.December {
		t.Errorf("to = %v, want end of December", gotTo)
	}
}

func TestService_Calendar_BadMonth(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, &tagRepoMock{}, &entryRepoMock{})

	_, err := svc.Calendar(context.Background(), uuid.New(), "May 2024")

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}
