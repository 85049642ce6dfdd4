package domain

import "time"

// Pagination defaults for entry listing.
const (
	DefaultEntryLimit = 20
	MaxEntryLimit     = 100
)

// EntryFilter defines parameters for listing a user's entries.
type EntryFilter struct {
	// DateFrom/DateTo bound created_at inclusively. nil means unbounded.
	DateFrom *time.Time
	DateTo   *time.Time

	// Tag filters entries carrying the given tag (normalized lowercase
	// match). nil means no tag filter.
	Tag *string

	// Limit is the maximum number of entries to return.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}

// Normalize applies defaults and clamps values.
func (f *EntryFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultEntryLimit
	}
	if f.Limit > MaxEntryLimit {
		f.Limit = MaxEntryLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
