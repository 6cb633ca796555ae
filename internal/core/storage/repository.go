package storage

import (
	"context"
	"errors"

	"github.com/aevon-lab/playstats/internal/core/period"
)

// ErrNotFound is returned when a maintenance operation targets a counter row that does not exist.
var ErrNotFound = errors.New("counter not found")

// ErrUnavailable is returned by operations that need an open store.
var ErrUnavailable = errors.New("play store is not open")

// Metadata is the display information cached alongside a key.
type Metadata struct {
	Path   string
	Title  string
	Artist string
	Album  string
}

// EventRecord is one journal row.
type EventRecord struct {
	// ID is assigned by the store on insert.
	ID       int64
	TrackKey string
	Metadata
	// PlayedAt is epoch milliseconds.
	PlayedAt      int64
	LengthSeconds float64
}

// Month is the counter period the record is attributed to.
func (r *EventRecord) Month() period.Period {
	return period.FromMillis(r.PlayedAt)
}

// PeriodCounter is one materialised (month, key) row.
type PeriodCounter struct {
	Month    string
	TrackKey string
	Metadata
	Playcount int64
}

// CounterRow is a PeriodCounter joined with the comparison month's playcount.
type CounterRow struct {
	PeriodCounter
	PrevPlaycount int64
}

// PlayWriter is the mutating side of the store. Exactly one goroutine calls it.
type PlayWriter interface {
	// RecordPlay appends the journal row and bumps its month counter atomically.
	RecordPlay(ctx context.Context, rec *EventRecord) error

	// DeleteCounter removes one counter row. The journal is never touched.
	// Returns ErrNotFound when no row matched.
	DeleteCounter(ctx context.Context, month period.Period, trackKey string) error

	// RecomputePeriod rebuilds a month's counters from the journal and returns
	// the number of rows written.
	RecomputePeriod(ctx context.Context, month period.Period) (int, error)
}

// CounterReader is the read side used by queries.
type CounterReader interface {
	// MonthCounters returns month's counters left-joined to compare's, playcount descending.
	MonthCounters(ctx context.Context, month, compare period.Period) ([]CounterRow, error)

	// CountersBetween returns every counter in [from, to] ordered by month ascending,
	// then playcount descending.
	CountersBetween(ctx context.Context, from, to period.Period) ([]PeriodCounter, error)

	// ListenedSeconds sums journal durations per key for plays in [startMs, endMs).
	ListenedSeconds(ctx context.Context, startMs, endMs int64) (map[string]float64, error)
}
