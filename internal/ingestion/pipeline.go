package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/aevon-lab/playstats/internal/core/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrClosed is returned by Submit once the pipeline stopped accepting work.
var ErrClosed = errors.New("ingestion pipeline closed")

type state int

const (
	stateOpen state = iota
	stateClosing
	stateClosed
)

func (s state) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateClosing:
		return "closing"
	default:
		return "closed"
	}
}

// Op is a maintenance mutation executed on the writer goroutine.
type Op func(ctx context.Context) error

// item is either a play event or a maintenance op.
type item struct {
	event *storage.EventRecord

	op   Op
	ctx  context.Context
	done chan error
}

// Pipeline serialises every mutation of the store through one writer goroutine.
// Producers append to an unbounded FIFO and never block; the writer drains it in order.
type Pipeline struct {
	writer storage.PlayWriter
	nowFn  func() time.Time

	mu    sync.Mutex
	queue []item
	state state

	notify chan struct{} // capacity 1; a pending wake-up is enough
	stop   chan struct{}
	done   chan struct{}
}

// NewPipeline starts the writer goroutine. The pipeline is open on return.
func NewPipeline(writer storage.PlayWriter) *Pipeline {
	if writer == nil {
		panic("ingestion: writer must not be nil")
	}
	p := &Pipeline{
		writer: writer,
		nowFn:  time.Now,
		notify: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go p.run()
	slog.Info("[Pipeline] Writer started")
	return p
}

// Post enqueues evt for persistence and returns immediately. It reports false,
// dropping the event, when the pipeline is not open.
func (p *Pipeline) Post(evt v1.PlayEvent) bool {
	evt.Normalize(p.nowFn())
	rec := &storage.EventRecord{
		TrackKey: evt.TrackKey,
		Metadata: storage.Metadata{
			Path:   evt.Path,
			Title:  evt.Title,
			Artist: evt.Artist,
			Album:  evt.Album,
		},
		PlayedAt:      evt.PlayedAt,
		LengthSeconds: evt.DurationSeconds,
	}

	if !p.enqueue(item{event: rec}) {
		events.WithLabelValues(statusDropped).Inc()
		return false
	}
	events.WithLabelValues(statusEnqueued).Inc()
	return true
}

// Submit runs op on the writer goroutine after everything queued before it,
// and waits for its result. If ctx ends first the op is skipped when it is
// reached, and ctx's error is returned.
func (p *Pipeline) Submit(ctx context.Context, op Op) error {
	done := make(chan error, 1)
	if !p.enqueue(item{op: op, ctx: ctx, done: done}) {
		return ErrClosed
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops intake, waits for every accepted item to be persisted and joins
// the writer. Calling it again is a no-op.
func (p *Pipeline) Close() {
	_ = p.CloseContext(context.Background())
}

// CloseContext is Close bounded by ctx. When ctx ends first the writer keeps
// draining in the background and ctx's error is returned.
func (p *Pipeline) CloseContext(ctx context.Context) error {
	p.mu.Lock()
	if p.state == stateOpen {
		p.state = stateClosing
		close(p.stop)
		slog.Info("[Pipeline] Closing, draining queue", "pending", len(p.queue))
	}
	p.mu.Unlock()

	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.mu.Lock()
	if p.state != stateClosed {
		p.state = stateClosed
		slog.Info("[Pipeline] Writer stopped")
	}
	p.mu.Unlock()
	return nil
}

// IsOpen reports whether Post currently accepts events.
func (p *Pipeline) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == stateOpen
}

// Pending returns the number of queued items.
func (p *Pipeline) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

func (p *Pipeline) enqueue(it item) bool {
	p.mu.Lock()
	if p.state != stateOpen {
		p.mu.Unlock()
		return false
	}
	p.queue = append(p.queue, it)
	queueDepth.Set(float64(len(p.queue)))
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
	return true
}

// take swaps the queue out. It also reports whether intake has stopped, which
// together with an empty batch means the writer is finished.
func (p *Pipeline) take() ([]item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	batch := p.queue
	p.queue = nil
	queueDepth.Set(0)
	return batch, p.state != stateOpen
}

func (p *Pipeline) run() {
	defer close(p.done)

	for {
		batch, closing := p.take()
		if len(batch) == 0 {
			if closing {
				return
			}
			select {
			case <-p.notify:
			case <-p.stop:
			}
			continue
		}

		for _, it := range batch {
			p.process(it)
		}
	}
}

func (p *Pipeline) process(it item) {
	if it.op != nil {
		if err := it.ctx.Err(); err != nil {
			it.done <- err
			return
		}
		it.done <- it.op(it.ctx)
		return
	}

	timer := prometheus.NewTimer(persistDuration)
	err := p.writer.RecordPlay(context.Background(), it.event)
	timer.ObserveDuration()

	if err != nil {
		events.WithLabelValues(statusFailed).Inc()
		slog.Error("[Pipeline] Dropping event after write failure",
			"track_key", it.event.TrackKey,
			"path", it.event.Path,
			"played_at", it.event.PlayedAt,
			"error", err)
		return
	}
	events.WithLabelValues(statusPersisted).Inc()
}
