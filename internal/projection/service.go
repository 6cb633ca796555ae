package projection

import (
	"context"
	"fmt"
	"sort"
	"time"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/aevon-lab/playstats/internal/core/period"
	"github.com/aevon-lab/playstats/internal/core/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// listenedPrecision rounds derived listening time to milliseconds.
const listenedPrecision = 3

// Service implements the month and year queries over the counter store.
// It reads without coordinating with the writer; the database provides isolation.
type Service struct {
	reader storage.CounterReader
	nowFn  func() time.Time
}

// NewService creates a new query service.
func NewService(reader storage.CounterReader) *Service {
	if reader == nil {
		panic("projection: reader must not be nil")
	}
	return &Service{
		reader: reader,
		nowFn:  time.Now,
	}
}

// QueryMonth returns every counter of month ("YYYY-MM") with the same key's
// playcount in the same month one year earlier. Rows come playcount
// descending; ties keep store order.
//
// On error the returned slice is empty, never nil.
func (s *Service) QueryMonth(ctx context.Context, month string) ([]v1.PeriodEntry, error) {
	p, err := period.ParseMonth(month)
	if err != nil {
		return []v1.PeriodEntry{}, err
	}

	var (
		rows     []storage.CounterRow
		listened map[string]float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.reader.MonthCounters(gctx, p, p.PreviousYear())
		if err != nil {
			return fmt.Errorf("query month %s: %w", p, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		listened, err = s.listenedSeconds(gctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return []v1.PeriodEntry{}, err
	}

	entries := make([]v1.PeriodEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, v1.PeriodEntry{
			Period:               p.String(),
			TrackKey:             r.TrackKey,
			Path:                 r.Path,
			Title:                r.Title,
			Artist:               r.Artist,
			Album:                r.Album,
			Playcount:            r.Playcount,
			PrevPlaycount:        r.PrevPlaycount,
			TotalListenedSeconds: toDecimal(listened[r.TrackKey]),
		})
	}
	return entries, nil
}

// QueryYear sums the twelve months of year ("YYYY") per key and compares each
// sum with the same key's sum over the previous year. Keys without plays in
// the year are absent.
//
// On error the returned slice is empty, never nil.
func (s *Service) QueryYear(ctx context.Context, year string) ([]v1.PeriodEntry, error) {
	p, err := period.ParseYear(year)
	if err != nil {
		return []v1.PeriodEntry{}, err
	}
	prev := p.PreviousYear()

	var (
		current, previous []storage.PeriodCounter
		listened          map[string]float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.reader.CountersBetween(gctx, p.FirstMonth(), p.LastMonth())
		if err != nil {
			return fmt.Errorf("query year %s: %w", p, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		previous, err = s.reader.CountersBetween(gctx, prev.FirstMonth(), prev.LastMonth())
		if err != nil {
			return fmt.Errorf("query year %s: previous year: %w", p, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		listened, err = s.listenedSeconds(gctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return []v1.PeriodEntry{}, err
	}

	totals := rollupByKey(current)
	prevPlays := playsByKey(previous)

	entries := make([]v1.PeriodEntry, 0, len(totals))
	for _, t := range totals {
		entries = append(entries, v1.PeriodEntry{
			Period:               p.String(),
			TrackKey:             t.key,
			Path:                 t.meta.Path,
			Title:                t.meta.Title,
			Artist:               t.meta.Artist,
			Album:                t.meta.Album,
			Playcount:            t.plays,
			PrevPlaycount:        prevPlays[t.key],
			TotalListenedSeconds: toDecimal(listened[t.key]),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Playcount > entries[j].Playcount
	})
	return entries, nil
}

// Query dispatches on the period's granularity.
func (s *Service) Query(ctx context.Context, p period.Period) ([]v1.PeriodEntry, error) {
	if p.IsYear() {
		return s.QueryYear(ctx, p.String())
	}
	return s.QueryMonth(ctx, p.String())
}

func (s *Service) listenedSeconds(ctx context.Context, p period.Period) (map[string]float64, error) {
	startMs, endMs := p.BoundsMillis()
	totals, err := s.reader.ListenedSeconds(ctx, startMs, endMs)
	if err != nil {
		return nil, fmt.Errorf("listened seconds %s: %w", p, err)
	}
	return totals, nil
}

func toDecimal(seconds float64) decimal.Decimal {
	if seconds == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(seconds).Round(listenedPrecision)
}
