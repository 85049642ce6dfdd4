package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

const (
	sampleMaxEntries    = 20
	samplePreviewChars  = 200
	topTagsCap          = 10
	statsTopTagsPreview = 5
)

// TagCount is one tag with its usage count inside a period.
type TagCount struct {
	Name  string
	Count int
}

// Stats summarizes a period of entries for prompt construction.
type Stats struct {
	TotalEntries     int
	EntriesPerWeek   float64
	MoodDistribution map[string]int
	TopTags          []TagCount
	AvgWordCount     float64
}

// aggregateEntries computes period statistics and a truncated textual sample
// over entries sorted by creation time ascending.
// Returns domain.ErrEmptyPeriod when there are no entries.
func aggregateEntries(entries []*domain.Entry, from, to time.Time) (*Stats, string, error) {
	if len(entries) == 0 {
		return nil, "", domain.ErrEmptyPeriod
	}

	total := len(entries)
	daysSpan := int(to.Sub(from).Hours() / 24)
	if daysSpan < 1 {
		daysSpan = 1
	}

	moodDist := make(map[string]int)
	tagCounts := make(map[string]int)
	wordSum := 0
	for _, e := range entries {
		moodDist[e.MoodLabel]++
		for _, t := range e.Tags {
			tagCounts[t.Name]++
		}
		wordSum += e.EffectiveWordCount()
	}

	topTags := make([]TagCount, 0, len(tagCounts))
	for name, n := range tagCounts {
		topTags = append(topTags, TagCount{Name: name, Count: n})
	}
	sort.Slice(topTags, func(i, j int) bool {
		if topTags[i].Count != topTags[j].Count {
			return topTags[i].Count > topTags[j].Count
		}
		return topTags[i].Name < topTags[j].Name
	})
	if len(topTags) > topTagsCap {
		topTags = topTags[:topTagsCap]
	}

	stats := &Stats{
		TotalEntries:     total,
		EntriesPerWeek:   float64(total) / float64(daysSpan) * 7,
		MoodDistribution: moodDist,
		TopTags:          topTags,
		AvgWordCount:     float64(wordSum) / float64(total),
	}
	return stats, renderSample(entries), nil
}

// renderStats produces the statistics block embedded into the period prompt.
func renderStats(s *Stats) string {
	moods := make([]string, 0, len(s.MoodDistribution))
	for mood := range s.MoodDistribution {
		moods = append(moods, mood)
	}
	sort.Strings(moods)

	moodParts := make([]string, 0, len(moods))
	for _, mood := range moods {
		moodParts = append(moodParts, fmt.Sprintf("%s: %d", mood, s.MoodDistribution[mood]))
	}

	topNames := make([]string, 0, statsTopTagsPreview)
	for i, t := range s.TopTags {
		if i == statsTopTagsPreview {
			break
		}
		topNames = append(topNames, t.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total entries: %d\n", s.TotalEntries)
	fmt.Fprintf(&b, "Entries per week: %.1f\n", s.EntriesPerWeek)
	fmt.Fprintf(&b, "Average word count: %.0f\n", s.AvgWordCount)
	fmt.Fprintf(&b, "Mood distribution: %s\n", strings.Join(moodParts, ", "))
	fmt.Fprintf(&b, "Top tags: %s\n", strings.Join(topNames, ", "))
	return b.String()
}

// renderSample renders up to 20 dated transcript previews plus a note about
// how many entries were omitted.
func renderSample(entries []*domain.Entry) string {
	parts := make([]string, 0, sampleMaxEntries)
	for i, e := range entries {
		if i == sampleMaxEntries {
			break
		}
		preview := e.Transcript
		if runes := []rune(preview); len(runes) > samplePreviewChars {
			preview = string(runes[:samplePreviewChars]) + "..."
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", e.CreatedAt.Format("2006-01-02"), preview))
	}

	sample := strings.Join(parts, "\n\n")
	if len(entries) > sampleMaxEntries {
		sample += fmt.Sprintf("\n\n... and %d more entries", len(entries)-sampleMaxEntries)
	}
	return sample
}
