package projection

import (
	"sort"
	"strings"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
)

// SortEntries reorders entries in place by col. Title ascending breaks ties so
// the result is deterministic regardless of store order.
func SortEntries(entries []v1.PeriodEntry, col SortColumn, ascending bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if c := compareBy(col, a, b); c != 0 {
			if ascending {
				return c < 0
			}
			return c > 0
		}
		return compareText(a.Title, b.Title) < 0
	})
}

func compareBy(col SortColumn, a, b v1.PeriodEntry) int {
	switch col {
	case SortTitle:
		return compareText(a.Title, b.Title)
	case SortArtist:
		return compareText(a.Artist, b.Artist)
	case SortAlbum:
		return compareText(a.Album, b.Album)
	case SortDelta:
		return compareInt(a.Delta(), b.Delta())
	default:
		return compareInt(a.Playcount, b.Playcount)
	}
}

// compareText orders case-insensitively, falling back to byte order so equal
// folds still sort deterministically.
func compareText(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
