package stats

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/aevon-lab/playstats/internal/core/fingerprint"
	"github.com/aevon-lab/playstats/internal/core/storage"
	"github.com/aevon-lab/playstats/internal/core/storage/sqlstore"
	"github.com/aevon-lab/playstats/internal/migrations"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "playstats.db")
	m := NewManager(sqlstore.Options{Dialect: migrations.DialectSQLite, AutoMigrate: true})
	require.NoError(t, m.Open(context.Background(), dsn))
	t.Cleanup(func() { _ = m.Close() })
	return m, dsn
}

func at(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 20, 0, 0, 0, time.Local).UnixMilli()
}

func event(path, title string, playedAt int64) v1.PlayEvent {
	return v1.PlayEvent{Path: path, Title: title, Artist: "Artist", Album: "Album", PlayedAt: playedAt, DurationSeconds: 180}
}

func byKey(entries []v1.PeriodEntry) map[string]v1.PeriodEntry {
	out := make(map[string]v1.PeriodEntry, len(entries))
	for _, e := range entries {
		out[e.TrackKey] = e
	}
	return out
}

func TestManager_NPostsInOneMonthCountN(t *testing.T) {
	ctx := context.Background()
	m, dsn := newManager(t)

	const n = 40
	for i := 0; i < n; i++ {
		require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 1+i%28))))
	}
	require.NoError(t, m.Close())
	require.False(t, m.IsOpen())

	require.NoError(t, m.Open(ctx, dsn))
	entries, err := m.QueryMonth(ctx, "2025-07")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(n), entries[0].Playcount)
	require.Equal(t, fingerprint.OfString("/music/a.flac"), entries[0].TrackKey)
	require.Equal(t, "7200", entries[0].TotalListenedSeconds.String())
}

func TestManager_DifferentMonthsAreDistinctCounters(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.June, 30))))
	require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 1))))
	require.NoError(t, m.Flush(ctx))

	for _, month := range []string{"2025-06", "2025-07"} {
		entries, err := m.QueryMonth(ctx, month)
		require.NoError(t, err)
		require.Len(t, entries, 1, month)
		require.Equal(t, int64(1), entries[0].Playcount, month)
	}
}

func TestManager_EmptyMonthIsNotAnError(t *testing.T) {
	m, _ := newManager(t)

	entries, err := m.QueryMonth(context.Background(), "1999-01")
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestManager_EndToEndMonthRanking(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	for i := 0; i < 3; i++ {
		require.True(t, m.PostEvent(event("aaa", "aaa", at(2025, time.July, 3+i))))
	}
	require.True(t, m.PostEvent(event("bbb", "bbb", at(2025, time.July, 9))))
	require.NoError(t, m.Flush(ctx))

	entries, err := m.QueryMonth(ctx, "2025-07")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "aaa", entries[0].Path)
	require.Equal(t, int64(3), entries[0].Playcount)
	require.Equal(t, "bbb", entries[1].Path)
	require.Equal(t, int64(1), entries[1].Playcount)
}

func TestManager_MetadataLastWriteWins(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	require.True(t, m.PostEvent(event("/music/a.flac", "First", at(2025, time.July, 2))))
	require.True(t, m.PostEvent(event("/music/a.flac", "Second", at(2025, time.July, 3))))
	require.NoError(t, m.Flush(ctx))

	entries, err := m.QueryMonth(ctx, "2025-07")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Second", entries[0].Title)
}

func TestManager_YearSumsMonthsAndComparesPreviousYear(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	posts := []v1.PlayEvent{
		event("/music/a.flac", "A", at(2025, time.January, 5)),
		event("/music/a.flac", "A", at(2025, time.March, 5)),
		event("/music/a.flac", "A", at(2025, time.December, 5)),
		event("/music/b.flac", "B", at(2025, time.June, 5)),
		event("/music/a.flac", "A", at(2024, time.February, 5)),
		event("/music/a.flac", "A", at(2024, time.August, 5)),
		event("/music/c.flac", "C", at(2024, time.August, 5)),
	}
	for _, evt := range posts {
		require.True(t, m.PostEvent(evt))
	}
	require.NoError(t, m.Flush(ctx))

	entries, err := m.QueryYear(ctx, "2025")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	got := byKey(entries)
	a := got[fingerprint.OfString("/music/a.flac")]
	require.Equal(t, int64(3), a.Playcount)
	require.Equal(t, int64(2), a.PrevPlaycount)
	b := got[fingerprint.OfString("/music/b.flac")]
	require.Equal(t, int64(1), b.Playcount)
	require.Zero(t, b.PrevPlaycount)

	require.Equal(t, fingerprint.OfString("/music/a.flac"), entries[0].TrackKey)
}

func TestManager_MonthComparesSameMonthPreviousYear(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2024, time.July, 5))))
	require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2024, time.July, 6))))
	require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.June, 6))))
	require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 7))))
	require.NoError(t, m.Flush(ctx))

	entries, err := m.QueryMonth(ctx, "2025-07")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(1), entries[0].Playcount)
	require.Equal(t, int64(2), entries[0].PrevPlaycount)
	require.Equal(t, int64(-1), entries[0].Delta())
}

func TestManager_OpenTwiceIsNoop(t *testing.T) {
	ctx := context.Background()
	m, dsn := newManager(t)

	require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 2))))
	require.NoError(t, m.Open(ctx, dsn))
	require.NoError(t, m.Open(ctx, ""))
	require.True(t, m.IsOpen())
	require.NoError(t, m.Close())

	// Reopening runs schema setup again over existing data.
	require.NoError(t, m.Open(ctx, dsn))
	entries, err := m.QueryMonth(ctx, "2025-07")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(1), entries[0].Playcount)
}

func TestManager_ClosedManagerIsSafe(t *testing.T) {
	ctx := context.Background()
	m := NewManager(sqlstore.Options{Dialect: migrations.DialectSQLite})

	require.NoError(t, m.Close())
	require.False(t, m.IsOpen())
	require.False(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 2))))

	entries, err := m.QueryMonth(ctx, "2025-07")
	require.ErrorIs(t, err, ErrNotOpen)
	require.NotNil(t, entries)

	_, err = m.QueryYear(ctx, "2025")
	require.ErrorIs(t, err, ErrNotOpen)
	require.ErrorIs(t, m.Ping(ctx), ErrNotOpen)
	require.ErrorIs(t, m.DeleteCounter(ctx, "2025-07", fingerprint.OfString("/a")), ErrNotOpen)
	_, err = m.RecomputePeriod(ctx, "2025", true)
	require.ErrorIs(t, err, ErrNotOpen)
}

func TestManager_OpenFailureStaysClosed(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))

	m := NewManager(sqlstore.Options{Dialect: migrations.DialectSQLite})
	err := m.Open(context.Background(), filepath.Join(blocker, "playstats.db"))
	require.Error(t, err)
	require.False(t, m.IsOpen())
	require.False(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 2))))
}

func TestManager_DeleteCounterThenRecompute(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	key := fingerprint.OfString("/music/a.flac")

	require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 2))))
	require.True(t, m.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 3))))

	// Maintenance runs behind the events queued before it.
	require.NoError(t, m.DeleteCounter(ctx, "2025-07", key))
	entries, err := m.QueryMonth(ctx, "2025-07")
	require.NoError(t, err)
	require.Empty(t, entries)

	require.ErrorIs(t, m.DeleteCounter(ctx, "2025-07", key), storage.ErrNotFound)

	n, err := m.RecomputePeriod(ctx, "2025", true)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	entries, err = m.QueryMonth(ctx, "2025-07")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(2), entries[0].Playcount)
}

func TestManager_MaintenanceRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	require.Error(t, m.DeleteCounter(ctx, "2025", fingerprint.OfString("/a")))
	require.Error(t, m.DeleteCounter(ctx, "2025-07", "not-a-key"))

	_, err := m.RecomputePeriod(ctx, "2025-07", true)
	require.Error(t, err)
	_, err = m.RecomputePeriod(ctx, "2025", false)
	require.Error(t, err)
}

func TestManager_MemoryStoresAreIsolated(t *testing.T) {
	ctx := context.Background()
	opts := sqlstore.Options{Dialect: migrations.DialectSQLite, DSN: ":memory:", AutoMigrate: true}

	a := NewManager(opts)
	require.NoError(t, a.Open(ctx, ""))
	t.Cleanup(func() { _ = a.Close() })
	b := NewManager(opts)
	require.NoError(t, b.Open(ctx, ""))
	t.Cleanup(func() { _ = b.Close() })

	require.True(t, a.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 10))))
	require.NoError(t, a.Flush(ctx))

	entries, err := a.QueryMonth(ctx, "2025-07")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = b.QueryMonth(ctx, "2025-07")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestManager_PostEventDoesNotWaitForClose(t *testing.T) {
	m, _ := newManager(t)

	// An in-flight query holds the read lock while Close queues for the write lock.
	m.mu.RLock()
	closing := make(chan struct{})
	go func() {
		m.mu.Lock()
		close(closing)
		m.mu.Unlock()
	}()
	time.Sleep(50 * time.Millisecond)

	posted := make(chan bool, 1)
	go func() { posted <- m.PostEvent(event("/music/a.flac", "A", at(2025, time.July, 10))) }()

	select {
	case ok := <-posted:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("PostEvent blocked behind a pending close")
	}

	m.mu.RUnlock()
	<-closing
}

func TestManager_Ping(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.Ping(context.Background()))
}

func TestCurrentPeriodHelpers(t *testing.T) {
	now := time.Now()
	month := CurrentMonth()
	year := CurrentYear()

	// Tolerate a month boundary between the two reads.
	require.Len(t, month, 7)
	require.Len(t, year, 4)
	require.Contains(t, []string{now.Format("2006-01"), now.AddDate(0, 1, 0).Format("2006-01")}, month)
	require.Contains(t, []string{now.Format("2006"), now.AddDate(1, 0, 0).Format("2006")}, year)
}
