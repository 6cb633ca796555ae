package sqlstore

import (
	"context"
	"fmt"

	"github.com/aevon-lab/playstats/internal/core/period"
	"github.com/aevon-lab/playstats/internal/core/storage"
)

// UpsertCounter adds delta plays to the (month, key) counter, creating it when
// absent, and overwrites the cached metadata.
func (s *Store) UpsertCounter(ctx context.Context, month period.Period, trackKey string, meta storage.Metadata, delta int64) error {
	return s.upsertCounter(ctx, s.db, month, trackKey, meta, delta)
}

func (s *Store) upsertCounter(ctx context.Context, q querier, month period.Period, trackKey string, meta storage.Metadata, delta int64) error {
	if delta <= 0 {
		return fmt.Errorf("upsert counter: delta must be positive, got %d", delta)
	}
	if month.IsYear() {
		return fmt.Errorf("upsert counter: %s is not a month: %w", month, period.ErrInvalidPeriod)
	}

	_, err := q.ExecContext(ctx, s.q(queryUpsertCounter),
		month.String(),
		trackKey,
		meta.Path,
		meta.Title,
		meta.Artist,
		meta.Album,
		delta,
	)
	if err != nil {
		return fmt.Errorf("upsert counter %s/%s: %w", month, trackKey, err)
	}
	return nil
}

// DeleteCounter removes one counter row. Journal rows for the key stay.
func (s *Store) DeleteCounter(ctx context.Context, month period.Period, trackKey string) error {
	res, err := s.db.ExecContext(ctx, s.q(queryDeleteCounter), month.String(), trackKey)
	if err != nil {
		return fmt.Errorf("delete counter %s/%s: %w", month, trackKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete counter %s/%s: rows affected: %w", month, trackKey, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// MonthCounters returns every counter of month with the comparison month's
// playcount for the same key, playcount descending.
func (s *Store) MonthCounters(ctx context.Context, month, compare period.Period) ([]storage.CounterRow, error) {
	rows, err := s.db.QueryContext(ctx, s.q(queryMonthCounters), compare.String(), month.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query month counters: %w", err)
	}
	defer rows.Close()

	var out []storage.CounterRow
	for rows.Next() {
		var r storage.CounterRow
		if err := rows.Scan(
			&r.Month,
			&r.TrackKey,
			&r.Path,
			&r.Title,
			&r.Artist,
			&r.Album,
			&r.Playcount,
			&r.PrevPlaycount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan counter row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month counters: %w", err)
	}
	return out, nil
}

// CountersBetween returns the counters of every month in [from, to].
func (s *Store) CountersBetween(ctx context.Context, from, to period.Period) ([]storage.PeriodCounter, error) {
	rows, err := s.db.QueryContext(ctx, s.q(queryCountersBetween), from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	var out []storage.PeriodCounter
	for rows.Next() {
		var c storage.PeriodCounter
		if err := rows.Scan(
			&c.Month,
			&c.TrackKey,
			&c.Path,
			&c.Title,
			&c.Artist,
			&c.Album,
			&c.Playcount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counters: %w", err)
	}
	return out, nil
}
