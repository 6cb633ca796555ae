package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aevon-lab/playstats/internal/core/fingerprint"
	"github.com/aevon-lab/playstats/internal/core/period"
	"github.com/aevon-lab/playstats/internal/core/storage"
	"github.com/aevon-lab/playstats/internal/migrations"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Options{
		Dialect:     migrations.DialectSQLite,
		DSN:         filepath.Join(t.TempDir(), "nested", "stats.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func at(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local).UnixMilli()
}

func mustMonth(t *testing.T, s string) period.Period {
	t.Helper()
	p, err := period.ParseMonth(s)
	require.NoError(t, err)
	return p
}

func play(key, title string, playedAt int64) *storage.EventRecord {
	return &storage.EventRecord{
		TrackKey: key,
		Metadata: storage.Metadata{Path: "/music/" + key + ".flac", Title: title, Artist: "Artist", Album: "Album"},
		PlayedAt: playedAt,
	}
}

func TestStore_EnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.RecordPlay(ctx, play("aaa", "A", at(2025, 7, 1))))
	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx))

	rows, err := s.MonthCounters(ctx, mustMonth(t, "2025-07"), mustMonth(t, "2024-07"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].Playcount)

	var pathColumns int
	err = s.DB().QueryRow(`SELECT COUNT(*) FROM pragma_table_info('monthly_count') WHERE name = 'path'`).Scan(&pathColumns)
	require.NoError(t, err)
	require.Equal(t, 1, pathColumns)
}

func TestStore_EnsureSchemaAddsPathToLegacyTables(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{Dialect: migrations.DialectSQLite, DSN: filepath.Join(t.TempDir(), "legacy.db"), AutoMigrate: true})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.DB().Exec(`
		CREATE TABLE play_log (id INTEGER PRIMARY KEY, track_crc TEXT, title TEXT, artist TEXT, album TEXT, played_at INTEGER);
		CREATE TABLE monthly_count (ym TEXT, track_crc TEXT, title TEXT, artist TEXT, album TEXT, playcount INTEGER, PRIMARY KEY (ym, track_crc));
		INSERT INTO monthly_count (ym, track_crc, title, artist, album, playcount) VALUES ('2025-07', 'aaa', 'Old', '', '', 4);
	`)
	require.NoError(t, err)

	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.RecordPlay(ctx, play("aaa", "New", at(2025, 7, 2))))

	rows, err := s.MonthCounters(ctx, mustMonth(t, "2025-07"), mustMonth(t, "2024-07"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(5), rows[0].Playcount)
	require.Equal(t, "New", rows[0].Title)
	require.Equal(t, "/music/aaa.flac", rows[0].Path)
}

func TestStore_RecordPlayCountsEveryEvent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	key := fingerprint.OfString("/music/a.flac")
	for i := 0; i < 7; i++ {
		rec := play(key, "A", at(2025, 7, 1+i))
		require.NoError(t, s.RecordPlay(ctx, rec))
		require.NotZero(t, rec.ID)
	}

	rows, err := s.MonthCounters(ctx, mustMonth(t, "2025-07"), mustMonth(t, "2024-07"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(7), rows[0].Playcount)
	require.Equal(t, key, rows[0].TrackKey)
}

func TestStore_DifferentMonthsAreDistinctRows(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.RecordPlay(ctx, play("aaa", "A", at(2025, 6, 30))))
	require.NoError(t, s.RecordPlay(ctx, play("aaa", "A", at(2025, 7, 1))))

	counters, err := s.CountersBetween(ctx, mustMonth(t, "2025-01"), mustMonth(t, "2025-12"))
	require.NoError(t, err)
	require.Len(t, counters, 2)
	require.Equal(t, "2025-06", counters[0].Month)
	require.Equal(t, "2025-07", counters[1].Month)
	for _, c := range counters {
		require.Equal(t, int64(1), c.Playcount)
	}
}

func TestStore_MetadataLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.RecordPlay(ctx, play("aaa", "First", at(2025, 7, 1))))
	require.NoError(t, s.RecordPlay(ctx, play("aaa", "Second", at(2025, 7, 2))))

	rows, err := s.MonthCounters(ctx, mustMonth(t, "2025-07"), mustMonth(t, "2024-07"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Second", rows[0].Title)
	require.Equal(t, int64(2), rows[0].Playcount)
}

func TestStore_MonthCountersJoinsComparisonMonth(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.RecordPlay(ctx, play("aaa", "A", at(2025, 7, 1))))
	}
	require.NoError(t, s.RecordPlay(ctx, play("bbb", "B", at(2025, 7, 3))))
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordPlay(ctx, play("bbb", "B", at(2024, 7, 3))))
	}
	// Previous month must not feed the comparison.
	require.NoError(t, s.RecordPlay(ctx, play("aaa", "A", at(2025, 6, 3))))

	rows, err := s.MonthCounters(ctx, mustMonth(t, "2025-07"), mustMonth(t, "2024-07"))
	require.NoError(t, err)

	got := make([][3]any, 0, len(rows))
	for _, r := range rows {
		got = append(got, [3]any{r.TrackKey, r.Playcount, r.PrevPlaycount})
	}
	want := [][3]any{
		{"aaa", int64(3), int64(0)},
		{"bbb", int64(1), int64(5)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("month counters mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_EmptyMonthReturnsNoRows(t *testing.T) {
	s := newTestStore(t)

	rows, err := s.MonthCounters(context.Background(), mustMonth(t, "2031-02"), mustMonth(t, "2030-02"))
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestStore_DeleteCounterKeepsJournal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	july := mustMonth(t, "2025-07")

	require.NoError(t, s.RecordPlay(ctx, play("aaa", "A", at(2025, 7, 1))))
	require.NoError(t, s.RecordPlay(ctx, play("bbb", "B", at(2025, 7, 1))))

	require.NoError(t, s.DeleteCounter(ctx, july, "aaa"))
	require.ErrorIs(t, s.DeleteCounter(ctx, july, "aaa"), storage.ErrNotFound)

	rows, err := s.MonthCounters(ctx, july, july.PreviousYear())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "bbb", rows[0].TrackKey)

	var journalRows int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM play_log WHERE track_crc = 'aaa'`).Scan(&journalRows))
	require.Equal(t, 1, journalRows)
}

func TestStore_RecomputePeriodRebuildsFromJournal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	july := mustMonth(t, "2025-07")

	require.NoError(t, s.RecordPlay(ctx, play("aaa", "Old", at(2025, 7, 1))))
	require.NoError(t, s.RecordPlay(ctx, play("aaa", "New", at(2025, 7, 2))))
	require.NoError(t, s.RecordPlay(ctx, play("bbb", "B", at(2025, 7, 3))))
	require.NoError(t, s.RecordPlay(ctx, play("aaa", "August", at(2025, 8, 1))))

	// Drift: a manual edit inflates one counter and another disappears.
	_, err := s.DB().Exec(`UPDATE monthly_count SET playcount = 40, title = 'Edited' WHERE ym = '2025-07' AND track_crc = 'aaa'`)
	require.NoError(t, err)
	require.NoError(t, s.DeleteCounter(ctx, july, "bbb"))

	n, err := s.RecomputePeriod(ctx, july)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	rows, err := s.MonthCounters(ctx, july, july.PreviousYear())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "aaa", rows[0].TrackKey)
	require.Equal(t, int64(2), rows[0].Playcount)
	require.Equal(t, "New", rows[0].Title)
	require.Equal(t, "bbb", rows[1].TrackKey)
	require.Equal(t, int64(1), rows[1].Playcount)

	august, err := s.MonthCounters(ctx, mustMonth(t, "2025-08"), mustMonth(t, "2024-08"))
	require.NoError(t, err)
	require.Len(t, august, 1)
	require.Equal(t, "August", august[0].Title)
}

func TestStore_RecomputeRejectsYear(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RecomputePeriod(context.Background(), period.Year(2025))
	require.ErrorIs(t, err, period.ErrInvalidPeriod)
}

func TestStore_UpsertCounterRejectsNonPositiveDelta(t *testing.T) {
	s := newTestStore(t)

	err := s.UpsertCounter(context.Background(), mustMonth(t, "2025-07"), "aaa", storage.Metadata{}, 0)
	require.Error(t, err)
}

func TestStore_ListenedSeconds(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := play("aaa", "A", at(2025, 7, 1))
	a.LengthSeconds = 200.25
	b := play("aaa", "A", at(2025, 7, 2))
	b.LengthSeconds = 100.5
	c := play("bbb", "B", at(2025, 7, 2))
	outside := play("aaa", "A", at(2025, 8, 1))
	outside.LengthSeconds = 999

	for _, rec := range []*storage.EventRecord{a, b, c, outside} {
		require.NoError(t, s.RecordPlay(ctx, rec))
	}

	startMs, endMs := mustMonth(t, "2025-07").BoundsMillis()
	totals, err := s.ListenedSeconds(ctx, startMs, endMs)
	require.NoError(t, err)
	require.InDelta(t, 300.75, totals["aaa"], 1e-9)
	require.Zero(t, totals["bbb"])
	require.Len(t, totals, 2)
}
