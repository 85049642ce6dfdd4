package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMoodLabel is assigned to a new entry until transcript analysis
// replaces it.
const DefaultMoodLabel = "neutral"

// Entry is a single transcribed diary entry.
//
// Title, MoodLabel, Insights and Tags are filled by the whole-transcript
// analysis after creation; an entry created from a raw transcript starts with
// an empty title, the default mood and no tags.
type Entry struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Transcript string
	Title      string
	MoodLabel  string

	// Insights holds legacy analysis snippets produced synchronously at
	// creation time. Generated Insight rows are a separate entity.
	Insights []string

	// WordCount may be absent for entries imported before counting was
	// introduced; consumers fall back to a live whitespace-token count.
	WordCount *int

	CreatedAt time.Time
	Tags      []Tag
}

// EffectiveWordCount returns the stored word count, or a live count of
// whitespace-separated tokens when none was stored.
func (e *Entry) EffectiveWordCount() int {
	if e.WordCount != nil {
		return *e.WordCount
	}
	return CountWords(e.Transcript)
}

// TagNames returns the entry's tag names in stored order.
func (e *Entry) TagNames() []string {
	names := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		names[i] = t.Name
	}
	return names
}

// Tag is a per-user label. Names are normalized to lowercase and unique
// within one owner.
type Tag struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}
