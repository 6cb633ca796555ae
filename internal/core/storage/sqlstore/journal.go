package sqlstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/playstats/internal/core/period"
	"github.com/aevon-lab/playstats/internal/core/storage"
)

// InsertEvent appends one journal row and fills rec.ID.
func (s *Store) InsertEvent(ctx context.Context, rec *storage.EventRecord) error {
	return s.insertEvent(ctx, s.db, rec)
}

func (s *Store) insertEvent(ctx context.Context, q querier, rec *storage.EventRecord) error {
	var id int64
	err := q.QueryRowContext(ctx, s.q(queryInsertEvent),
		rec.TrackKey,
		rec.Path,
		rec.Title,
		rec.Artist,
		rec.Album,
		rec.PlayedAt,
		rec.LengthSeconds,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	rec.ID = id
	return nil
}

// RecordPlay appends the journal row and increments the counter of the month
// it belongs to, in one transaction.
func (s *Store) RecordPlay(ctx context.Context, rec *storage.EventRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record play: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := s.insertEvent(ctx, tx, rec); err != nil {
		return fmt.Errorf("record play: %w", err)
	}

	if err := s.upsertCounter(ctx, tx, rec.Month(), rec.TrackKey, rec.Metadata, 1); err != nil {
		return fmt.Errorf("record play: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record play: commit: %w", err)
	}

	slog.Debug("[SQLStore] Recorded play",
		"id", rec.ID,
		"track_key", rec.TrackKey,
		"month", rec.Month().String())
	return nil
}

type recount struct {
	meta  storage.Metadata
	plays int64
}

// RecomputePeriod replaces month's counters with a fresh count of its journal rows.
// The metadata of the newest journal row per key wins, as it does on ingestion.
func (s *Store) RecomputePeriod(ctx context.Context, month period.Period) (int, error) {
	if month.IsYear() {
		return 0, fmt.Errorf("recompute: %s is not a month: %w", month, period.ErrInvalidPeriod)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("recompute %s: begin tx: %w", month, err)
	}
	defer tx.Rollback() //nolint:errcheck

	counts, order, err := s.scanJournal(ctx, tx, month)
	if err != nil {
		return 0, fmt.Errorf("recompute %s: %w", month, err)
	}

	if _, err := tx.ExecContext(ctx, s.q(queryDeleteMonth), month.String()); err != nil {
		return 0, fmt.Errorf("recompute %s: clear counters: %w", month, err)
	}

	for _, key := range order {
		c := counts[key]
		if err := s.upsertCounter(ctx, tx, month, key, c.meta, c.plays); err != nil {
			return 0, fmt.Errorf("recompute %s: %w", month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("recompute %s: commit: %w", month, err)
	}

	slog.Info("[SQLStore] Recomputed month", "month", month.String(), "keys", len(order))
	return len(order), nil
}

// scanJournal reads every journal row attributed to month. Rows are fully
// consumed before the caller issues writes on the same transaction.
func (s *Store) scanJournal(ctx context.Context, q querier, month period.Period) (map[string]*recount, []string, error) {
	startMs, endMs := month.BoundsMillis()

	rows, err := q.QueryContext(ctx, s.q(queryJournalRange), startMs, endMs)
	if err != nil {
		return nil, nil, fmt.Errorf("scan journal: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]*recount)
	var order []string
	for rows.Next() {
		var (
			id       int64
			key      string
			meta     storage.Metadata
			playedAt int64
		)
		if err := rows.Scan(&id, &key, &meta.Path, &meta.Title, &meta.Artist, &meta.Album, &playedAt); err != nil {
			return nil, nil, fmt.Errorf("scan journal row: %w", err)
		}
		if period.FromMillis(playedAt) != month {
			continue
		}
		c, ok := counts[key]
		if !ok {
			c = &recount{}
			counts[key] = c
			order = append(order, key)
		}
		c.plays++
		c.meta = meta
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal: %w", err)
	}
	return counts, order, nil
}

// ListenedSeconds sums the recorded durations per key for plays in [startMs, endMs).
func (s *Store) ListenedSeconds(ctx context.Context, startMs, endMs int64) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, s.q(queryListenedSeconds), startMs, endMs)
	if err != nil {
		return nil, fmt.Errorf("failed to query listened seconds: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var key string
		var seconds float64
		if err := rows.Scan(&key, &seconds); err != nil {
			return nil, fmt.Errorf("failed to scan listened seconds: %w", err)
		}
		totals[key] = seconds
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listened seconds: %w", err)
	}
	return totals, nil
}
