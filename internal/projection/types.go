package projection

import (
	"errors"
	"fmt"
	"strings"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/aevon-lab/playstats/internal/core/period"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid stats query")

func invalidQueryf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

// SortColumn names a presentation ordering for period entries.
type SortColumn string

const (
	SortPlays  SortColumn = "plays"
	SortTitle  SortColumn = "title"
	SortArtist SortColumn = "artist"
	SortAlbum  SortColumn = "album"
	SortDelta  SortColumn = "delta"
)

// ParseSortColumn accepts the column names above, case-insensitively. Empty means plays.
func ParseSortColumn(s string) (SortColumn, error) {
	switch col := SortColumn(strings.ToLower(strings.TrimSpace(s))); col {
	case "":
		return SortPlays, nil
	case SortPlays, SortTitle, SortArtist, SortAlbum, SortDelta:
		return col, nil
	default:
		return "", invalidQueryf("unknown sort column %q (want plays, title, artist, album or delta)", s)
	}
}

// ParseOrder maps asc/desc to ascending. Empty picks the column's natural order:
// descending for numbers, ascending for text.
func ParseOrder(col SortColumn, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return col != SortPlays && col != SortDelta, nil
	case "asc":
		return true, nil
	case "desc":
		return false, nil
	default:
		return false, invalidQueryf("unknown order %q (want asc or desc)", s)
	}
}

// NewPeriodResponse wraps entries of p with navigation links and the play total.
func NewPeriodResponse(p period.Period, entries []v1.PeriodEntry) v1.PeriodResponse {
	if entries == nil {
		entries = []v1.PeriodEntry{}
	}
	granularity := "month"
	if p.IsYear() {
		granularity = "year"
	}

	var total int64
	for _, e := range entries {
		total += e.Playcount
	}

	return v1.PeriodResponse{
		Period:      p.String(),
		Granularity: granularity,
		Previous:    p.Prev().String(),
		Next:        p.Next().String(),
		Compare:     p.PreviousYear().String(),
		TotalPlays:  total,
		Entries:     entries,
	}
}
