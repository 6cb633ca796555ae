// Package stats owns the lifecycle of one play store: the database handle,
// the single-writer ingestion pipeline and the query engine built over them.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/aevon-lab/playstats/internal/core/fingerprint"
	"github.com/aevon-lab/playstats/internal/core/period"
	"github.com/aevon-lab/playstats/internal/core/storage"
	"github.com/aevon-lab/playstats/internal/core/storage/sqlstore"
	"github.com/aevon-lab/playstats/internal/ingestion"
	"github.com/aevon-lab/playstats/internal/projection"
)

// ErrNotOpen is returned by operations that need an open store.
var ErrNotOpen = storage.ErrUnavailable

var (
	_ ingestion.EventSink = (*Manager)(nil)
	_ projection.Stats    = (*Manager)(nil)
)

// Manager is an explicitly owned store handle. The zero value is not usable;
// create one with NewManager. A closed Manager can be opened again.
type Manager struct {
	opts sqlstore.Options

	// lifeMu serialises Open and Close.
	lifeMu sync.Mutex

	mu       sync.RWMutex
	store    *sqlstore.Store
	pipeline *ingestion.Pipeline
	query    *projection.Service

	// intake mirrors pipeline for PostEvent, which must not wait on mu.
	intake atomic.Pointer[ingestion.Pipeline]
}

// NewManager returns a closed manager that opens stores with opts.
func NewManager(opts sqlstore.Options) *Manager {
	return &Manager{opts: opts}
}

// Open connects to the store at dsn (or the configured DSN when empty),
// ensures its schema and starts the writer. Opening an open manager is a
// no-op. On failure the manager stays closed.
func (m *Manager) Open(ctx context.Context, dsn string) error {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()

	m.mu.RLock()
	pipeline := m.pipeline
	m.mu.RUnlock()
	if pipeline != nil {
		if pipeline.IsOpen() {
			return nil
		}
		return errors.New("open play store: previous store is still draining")
	}

	opts := m.opts
	if dsn != "" {
		opts.DSN = dsn
	}

	store, err := sqlstore.Open(ctx, opts)
	if err != nil {
		slog.Error("[Stats] Failed to open play store", "dialect", opts.Dialect, "error", err)
		return fmt.Errorf("open play store: %w", err)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		slog.Error("[Stats] Schema migration failed, continuing", "error", err)
	}

	m.mu.Lock()
	m.store = store
	m.pipeline = ingestion.NewPipeline(store)
	m.query = projection.NewService(store)
	m.intake.Store(m.pipeline)
	m.mu.Unlock()

	slog.Info("[Stats] Play store open", "dialect", store.Dialect())
	return nil
}

// Close drains every accepted event, stops the writer and closes the
// database. Closing a closed manager is a no-op.
func (m *Manager) Close() error {
	return m.CloseContext(context.Background())
}

// CloseContext is Close bounded by ctx. If ctx ends before the queue drains
// the database stays open, the writer keeps draining and a later Close
// finishes the job.
func (m *Manager) CloseContext(ctx context.Context) error {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()

	m.mu.RLock()
	pipeline := m.pipeline
	m.mu.RUnlock()
	if pipeline == nil {
		return nil
	}

	if err := pipeline.CloseContext(ctx); err != nil {
		return fmt.Errorf("drain pipeline: %w", err)
	}

	// Waits for in-flight queries.
	m.mu.Lock()
	store := m.store
	m.store, m.pipeline, m.query = nil, nil, nil
	m.intake.Store(nil)
	m.mu.Unlock()

	return store.Close()
}

// IsOpen reports whether the manager accepts events.
func (m *Manager) IsOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pipeline != nil && m.pipeline.IsOpen()
}

// PostEvent enqueues evt without blocking. It reports false, dropping the
// event, when the manager is not open.
func (m *Manager) PostEvent(evt v1.PlayEvent) bool {
	pipeline := m.intake.Load()
	if pipeline == nil {
		return false
	}
	return pipeline.Post(evt)
}

// Flush waits until every event posted before the call has been persisted.
func (m *Manager) Flush(ctx context.Context) error {
	return m.submit(ctx, func(context.Context) error { return nil })
}

// QueryMonth returns the counters of month ("YYYY-MM") with year-over-year deltas.
func (m *Manager) QueryMonth(ctx context.Context, month string) ([]v1.PeriodEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.query == nil {
		return []v1.PeriodEntry{}, ErrNotOpen
	}
	return m.query.QueryMonth(ctx, month)
}

// QueryYear returns the per-key sums of year ("YYYY") with year-over-year deltas.
func (m *Manager) QueryYear(ctx context.Context, year string) ([]v1.PeriodEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.query == nil {
		return []v1.PeriodEntry{}, ErrNotOpen
	}
	return m.query.QueryYear(ctx, year)
}

// DeleteCounter removes the counter of trackKey in month. The journal keeps
// its rows, so a later recompute restores the counter. It returns
// storage.ErrNotFound when no such counter existed.
func (m *Manager) DeleteCounter(ctx context.Context, month, trackKey string) error {
	p, err := period.ParseMonth(month)
	if err != nil {
		return err
	}
	if _, err := fingerprint.ParseKey(trackKey); err != nil {
		return err
	}

	return m.submit(ctx, func(ctx context.Context) error {
		store := m.currentStore()
		if err := store.DeleteCounter(ctx, p, trackKey); err != nil {
			return err
		}
		slog.Info("[Stats] Counter deleted", "month", p.String(), "track_key", trackKey)
		return nil
	})
}

// RecomputePeriod rebuilds the counters of p from the journal. A year
// rebuilds each of its twelve months. It returns how many counters were
// written.
func (m *Manager) RecomputePeriod(ctx context.Context, p string, isYear bool) (int, error) {
	var (
		target period.Period
		err    error
	)
	if isYear {
		target, err = period.ParseYear(p)
	} else {
		target, err = period.ParseMonth(p)
	}
	if err != nil {
		return 0, err
	}

	var total int
	err = m.submit(ctx, func(ctx context.Context) error {
		store := m.currentStore()
		for _, month := range target.Months() {
			n, err := store.RecomputePeriod(ctx, month)
			if err != nil {
				return fmt.Errorf("recompute %s: %w", month, err)
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("[Stats] Period recomputed", "period", target.String(), "counters", total)
	return total, nil
}

// Ping checks the database answers.
func (m *Manager) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.store == nil {
		return ErrNotOpen
	}
	return m.store.Ping(ctx)
}

// submit runs op on the writer goroutine so maintenance stays ordered with
// ingestion.
func (m *Manager) submit(ctx context.Context, op ingestion.Op) error {
	m.mu.RLock()
	pipeline := m.pipeline
	m.mu.RUnlock()
	if pipeline == nil {
		return ErrNotOpen
	}

	err := pipeline.Submit(ctx, op)
	if errors.Is(err, ingestion.ErrClosed) {
		return ErrNotOpen
	}
	return err
}

// currentStore is only called from ops running on the writer, which Close
// joins before it releases the store.
func (m *Manager) currentStore() *sqlstore.Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store
}

// CurrentMonth returns the current local month as YYYY-MM.
func CurrentMonth() string {
	return period.CurrentMonth()
}

// CurrentYear returns the current local year as YYYY.
func CurrentYear() string {
	return period.CurrentYear()
}
