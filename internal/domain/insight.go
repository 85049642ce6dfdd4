package domain

import (
	"time"

	"github.com/google/uuid"
)

// InsightScope says whether an insight covers one entry or an aggregated
// period.
type InsightScope string

const (
	ScopeEntry  InsightScope = "entry"
	ScopePeriod InsightScope = "period"
)

// Valid reports whether s is a known scope.
func (s InsightScope) Valid() bool {
	return s == ScopeEntry || s == ScopePeriod
}

// Timeframe is the categorical period type for period-scope insights.
type Timeframe string

const (
	TimeframeWeek   Timeframe = "week"
	TimeframeMonth  Timeframe = "month"
	TimeframeYear   Timeframe = "year"
	TimeframeCustom Timeframe = "custom"
)

// Valid reports whether t is a known timeframe.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeWeek, TimeframeMonth, TimeframeYear, TimeframeCustom:
		return true
	}
	return false
}

// DefaultInsightLanguage is used when the provider output carries no
// language code. The prompt design is biased toward Russian-language users;
// this is a documented default, not a guess.
const DefaultInsightLanguage = "ru"

// WeightedTag is a tag with a relevance weight, as returned by period
// analysis and by the tag cloud.
type WeightedTag struct {
	Tag    string  `json:"tag"`
	Weight float64 `json:"weight"`
}

// EntryInsightMeta is the metadata shape for scope=entry insights.
type EntryInsightMeta struct {
	MoodTrend  string   `json:"mood_trend"`
	Confidence float64  `json:"confidence"`
	TopTopics  []string `json:"top_topics"`
}

// PeriodInsightMeta is the metadata shape for scope=period insights.
type PeriodInsightMeta struct {
	EmotionalTrend       string        `json:"emotional_trend"`
	TopTags              []WeightedTag `json:"top_tags"`
	KeyInsights          []string      `json:"key_insights"`
	FocusRecommendations []string      `json:"focus_recommendations"`
}

// Insight is a generated analysis of one entry or of a period of entries.
//
// Rows are immutable after creation: regeneration deletes the prior row and
// inserts a fresh one. Exactly one of EntryMeta / PeriodMeta is set,
// discriminated by Scope.
type Insight struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Scope  InsightScope

	// SourceEntryID is set iff Scope == ScopeEntry.
	SourceEntryID *uuid.UUID

	// PeriodFrom, PeriodTo and Timeframe are set iff Scope == ScopePeriod.
	// The bounds are the canonical normalized interval; exact equality on
	// them is the cache key, so they must never be recomputed differently
	// for the same logical request.
	PeriodFrom *time.Time
	PeriodTo   *time.Time
	Timeframe  *Timeframe

	Language string
	Summary  string
	Details  string

	EntryMeta  *EntryInsightMeta
	PeriodMeta *PeriodInsightMeta

	CreatedAt time.Time
}
