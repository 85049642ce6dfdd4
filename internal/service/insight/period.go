package insight

import (
	"fmt"
	"time"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// NormalizePeriod maps a timeframe plus optional anchor/custom bounds to the
// canonical [from, to] interval.
//
// The result is the cache key for period insights, so it must be
// deterministic: all bounds are constructed in UTC with explicit components,
// never derived from local time or duration arithmetic on the anchor.
//
//	week:   Monday 00:00:00 .. Sunday 23:59:59 of the anchor's week
//	month:  first day 00:00:00 .. last day 23:59:59 of the anchor's month
//	year:   Jan 1 00:00:00 .. Dec 31 23:59:59 of the anchor's year
//	custom: from at 00:00:00 .. to at 23:59:59.999999 (both bounds required)
func NormalizePeriod(timeframe domain.Timeframe, anchor, from, to *time.Time) (time.Time, time.Time, error) {
	var zero time.Time

	a := time.Now().UTC()
	if anchor != nil {
		a = anchor.UTC()
	}

	switch timeframe {
	case domain.TimeframeWeek:
		// time.Weekday counts Sunday as 0; shift so Monday is the week start.
		daysSinceMonday := (int(a.Weekday()) + 6) % 7
		monday := a.AddDate(0, 0, -daysSinceMonday)
		periodFrom := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
		periodTo := periodFrom.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		return periodFrom, periodTo, nil

	case domain.TimeframeMonth:
		periodFrom := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, time.UTC)
		// First instant of the next month minus one second handles the
		// December rollover through AddDate's year carry.
		periodTo := periodFrom.AddDate(0, 1, 0).Add(-time.Second)
		return periodFrom, periodTo, nil

	case domain.TimeframeYear:
		periodFrom := time.Date(a.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		periodTo := time.Date(a.Year(), time.December, 31, 23, 59, 59, 0, time.UTC)
		return periodFrom, periodTo, nil

	case domain.TimeframeCustom:
		if from == nil || to == nil {
			return zero, zero, fmt.Errorf("%w: custom timeframe requires both from and to dates", domain.ErrInvalidPeriod)
		}
		f := from.UTC()
		t := to.UTC()
		periodFrom := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
		// Microsecond precision matches the timestamp column resolution.
		periodTo := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999000, time.UTC)
		return periodFrom, periodTo, nil

	default:
		return zero, zero, fmt.Errorf("%w: invalid timeframe: %q", domain.ErrInvalidPeriod, string(timeframe))
	}
}
