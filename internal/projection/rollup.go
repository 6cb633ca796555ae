package projection

import (
	"github.com/aevon-lab/playstats/internal/core/storage"
)

// keyTotal is one key's plays summed over several months.
type keyTotal struct {
	key   string
	meta  storage.Metadata
	plays int64
}

// rollupByKey groups counters by key and sums their playcounts. Counters must
// arrive month ascending: each metadata field keeps the latest non-empty value.
// Keys are returned in first-appearance order so the caller's stable sort
// keeps store order on ties.
func rollupByKey(counters []storage.PeriodCounter) []*keyTotal {
	index := make(map[string]*keyTotal, len(counters))
	out := make([]*keyTotal, 0, len(counters))

	for _, c := range counters {
		t, ok := index[c.TrackKey]
		if !ok {
			t = &keyTotal{key: c.TrackKey}
			index[c.TrackKey] = t
			out = append(out, t)
		}
		t.plays += c.Playcount
		mergeMetadata(&t.meta, c.Metadata)
	}
	return out
}

func mergeMetadata(dst *storage.Metadata, src storage.Metadata) {
	if src.Path != "" {
		dst.Path = src.Path
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Artist != "" {
		dst.Artist = src.Artist
	}
	if src.Album != "" {
		dst.Album = src.Album
	}
}

// playsByKey sums counters per key.
func playsByKey(counters []storage.PeriodCounter) map[string]int64 {
	totals := make(map[string]int64, len(counters))
	for _, c := range counters {
		totals[c.TrackKey] += c.Playcount
	}
	return totals
}
