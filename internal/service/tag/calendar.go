package tag

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// CalendarEntry is one entry as shown in the calendar view.
type CalendarEntry struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Time  string    `json:"time"` // HH:MM
	Tags  []string  `json:"tags"`
}

// CalendarDay groups the entries of one calendar day.
type CalendarDay struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Entries []CalendarEntry `json:"entries"`
}

// Calendar returns the user's entries for one month ("YYYY-MM") grouped by
// calendar day, days ascending, preserving within-day creation order.
func (s *Service) Calendar(ctx context.Context, userID uuid.UUID, month string) ([]CalendarDay, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "month", Message: "must be in YYYY-MM format"},
		}}
	}
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	entries, err := s.entries.ListByPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("tag.Calendar: %w", err)
	}
	return AggregateCalendar(entries), nil
}

// AggregateCalendar groups entries by calendar day. Input order is preserved
// inside each day, so callers must pass entries sorted by creation time.
func AggregateCalendar(entries []*domain.Entry) []CalendarDay {
	grouped := make(map[string][]CalendarEntry)
	for _, e := range entries {
		day := e.CreatedAt.Format("2006-01-02")
		grouped[day] = append(grouped[day], CalendarEntry{
			ID:    e.ID,
			Title: e.Title,
			Time:  e.CreatedAt.Format("15:04"),
			Tags:  e.TagNames(),
		})
	}

	days := make([]string, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]CalendarDay, 0, len(days))
	for _, day := range days {
		out = append(out, CalendarDay{Date: day, Entries: grouped[day]})
	}
	return out
}
