// Package provider defines the capability contracts for speech-to-text and
// transcript analysis. Concrete implementations live under
// internal/adapter/provider and are selected by configuration.
package provider

import "context"

// AnalysisResult is the structured outcome of whole-transcript analysis.
type AnalysisResult struct {
	Title     string   `json:"title"`
	MoodLabel string   `json:"mood_label"`
	Tags      []string `json:"tags"`
	Insights  []string `json:"insights"`
}

// Transcriber converts a local audio file into text.
type Transcriber interface {
	// Transcribe returns the transcript of the audio file at path.
	Transcribe(ctx context.Context, path string) (string, error)
}

// Analyzer performs LLM-backed text analysis over transcripts.
type Analyzer interface {
	// AnalyzeTranscript extracts title, mood, tags and short observations
	// from a single transcript. All four result fields are required; a
	// response missing any of them is a provider contract violation.
	AnalyzeTranscript(ctx context.Context, transcript string) (*AnalysisResult, error)

	// Complete runs a JSON-mode chat completion and returns the decoded
	// object. Callers interpret the keys; optional fields are tolerated.
	Complete(ctx context.Context, system, user string) (map[string]any, error)

	// FormatTranscript cleans up a raw speech-to-text transcript
	// (punctuation, casing) without translating or dropping content.
	FormatTranscript(ctx context.Context, raw string) (string, error)
}
