package insight

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

func makeEntry(createdAt time.Time, transcript, mood string, wordCount *int, tags ...string) *domain.Entry {
	e := &domain.Entry{
		ID:         uuid.New(),
		Transcript: transcript,
		MoodLabel:  mood,
		WordCount:  wordCount,
		CreatedAt:  createdAt,
	}
	for _, name := range tags {
		e.Tags = append(e.Tags, domain.Tag{Name: name})
	}
	return e
}

func intPtr(n int) *int { return &n }

func TestAggregateEntries_Empty(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 19, 23, 59, 59, 0, time.UTC)

	_, _, err := aggregateEntries(nil, from, to)
	assert.ErrorIs(t, err, domain.ErrEmptyPeriod)
}

func TestAggregateEntries_Stats(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 19, 23, 59, 59, 0, time.UTC)

	entries := []*domain.Entry{
		makeEntry(from.Add(10*time.Hour), "один два три", "anxious", intPtr(3), "работа", "усталость"),
		makeEntry(from.Add(30*time.Hour), "один два три четыре пять", "calm", nil, "работа"),
	}

	stats, sample, err := aggregateEntries(entries, from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalEntries)
	// 7-day span: 2 entries / 6 whole days * 7.
	assert.InDelta(t, 2.0/6.0*7, stats.EntriesPerWeek, 1e-9)
	assert.Equal(t, map[string]int{"anxious": 1, "calm": 1}, stats.MoodDistribution)
	// Live word count for the nil entry: 5 words, stored count for the other.
	assert.InDelta(t, 4.0, stats.AvgWordCount, 1e-9)

	require.Len(t, stats.TopTags, 2)
	assert.Equal(t, TagCount{Name: "работа", Count: 2}, stats.TopTags[0])
	assert.Equal(t, TagCount{Name: "усталость", Count: 1}, stats.TopTags[1])

	assert.Contains(t, sample, "[2024-05-13] один два три")
	assert.NotContains(t, sample, "more entries")
}

func TestAggregateEntries_TopTagsCap(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)

	var entries []*domain.Entry
	for i := 0; i < 12; i++ {
		entries = append(entries, makeEntry(from.Add(time.Duration(i)*time.Hour), "текст", "calm", intPtr(1), fmt.Sprintf("tag%02d", i)))
	}

	stats, _, err := aggregateEntries(entries, from, to)
	require.NoError(t, err)

	assert.Len(t, stats.TopTags, 10)
}

func TestAggregateEntries_SampleTruncation(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

	long := strings.Repeat("ш", 250)
	var entries []*domain.Entry
	for i := 0; i < 25; i++ {
		entries = append(entries, makeEntry(from.AddDate(0, 0, i), long, "calm", intPtr(1)))
	}

	_, sample, err := aggregateEntries(entries, from, to)
	require.NoError(t, err)

	// 200-rune previews get an ellipsis marker.
	assert.Contains(t, sample, strings.Repeat("ш", 200)+"...")
	assert.NotContains(t, sample, strings.Repeat("ш", 201))
	// 25 entries: 20 sampled plus a note about the remaining 5.
	assert.Contains(t, sample, "... and 5 more entries")
	assert.Equal(t, 20, strings.Count(sample, "[2024-"))
}

func TestRenderStats(t *testing.T) {
	t.Parallel()

	out := renderStats(&Stats{
		TotalEntries:     4,
		EntriesPerWeek:   3.5,
		MoodDistribution: map[string]int{"calm": 3, "anxious": 1},
		TopTags:          []TagCount{{Name: "работа", Count: 3}, {Name: "спорт", Count: 1}},
		AvgWordCount:     41.7,
	})

	assert.Contains(t, out, "Total entries: 4")
	assert.Contains(t, out, "Entries per week: 3.5")
	assert.Contains(t, out, "Average word count: 42")
	assert.Contains(t, out, "anxious: 1, calm: 3")
	assert.Contains(t, out, "Top tags: работа, спорт")
}
