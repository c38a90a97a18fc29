// Package persist applies list snapshots to the store from a single goroutine.
//
// Every mutation of the todo screen produces a snapshot of the changed list.
// Snapshots are applied strictly in the order they were enqueued, so the stored
// value for a key is always the most recent snapshot for that key once the queue drains.
package persist

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// DefaultQueueSize is the queue capacity used when none is configured.
const DefaultQueueSize = 64

// ErrClosed is returned by Enqueue and Flush after Close.
var ErrClosed = errors.New("persist: writer closed")

// Saver stores already-encoded data under a key.
type Saver interface {
	SaveRaw(ctx context.Context, key string, data []byte) error
}

// Snapshot is the encoded state of one list at one point in time.
type Snapshot struct {
	Key   string
	Value []byte
}

// Stats counts what the writer has done.
type Stats struct {
	Enqueued uint64
	Applied  uint64
	Failed   uint64
}

type request struct {
	snap    Snapshot
	flushed chan struct{}
}

// Writer serializes snapshot writes through one goroutine.
// Save failures are logged and counted; they never reach the caller.
type Writer struct {
	saver  Saver
	logger *log.Logger

	queue chan request
	done  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	enqueued atomic.Uint64
	applied  atomic.Uint64
	failed   atomic.Uint64
}

// NewWriter starts a writer with the given queue capacity.
// A non-positive size uses DefaultQueueSize.
func NewWriter(saver Saver, size int, logger *log.Logger) *Writer {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Writer{
		saver:  saver,
		logger: logger,
		queue:  make(chan request, size),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	go w.run()
	return w
}

// Enqueue schedules snap to be written after everything enqueued before it.
// It blocks while the queue is full, until Close gives up on draining.
func (w *Writer) Enqueue(snap Snapshot) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrClosed
	}
	select {
	case w.queue <- request{snap: snap}:
		w.enqueued.Add(1)
		return nil
	case <-w.ctx.Done():
		return ErrClosed
	}
}

// Flush waits until every snapshot enqueued before the call has been applied.
func (w *Writer) Flush(ctx context.Context) error {
	flushed := make(chan struct{})

	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		return ErrClosed
	}
	select {
	case w.queue <- request{flushed: flushed}:
	case <-ctx.Done():
		w.mu.RUnlock()
		return ctx.Err()
	}
	w.mu.RUnlock()

	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting snapshots and drains the queue.
// If ctx expires first, the in-flight write is cancelled, blocked Enqueue calls
// return ErrClosed and the rest are abandoned.
func (w *Writer) Close(ctx context.Context) error {
	stop := context.AfterFunc(ctx, w.cancel)
	defer stop()

	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
	case <-ctx.Done():
		w.cancel()
		<-w.done
	}
	// w.ctx is only cancelled before this point when ctx expired.
	abandoned := w.ctx.Err() != nil
	w.cancel()
	if abandoned {
		return ctx.Err()
	}
	return nil
}

// Stats returns a copy of the counters.
func (w *Writer) Stats() Stats {
	return Stats{
		Enqueued: w.enqueued.Load(),
		Applied:  w.applied.Load(),
		Failed:   w.failed.Load(),
	}
}

func (w *Writer) run() {
	defer close(w.done)
	for req := range w.queue {
		if req.flushed != nil {
			close(req.flushed)
			continue
		}
		if w.ctx.Err() != nil {
			w.failed.Add(1)
			continue
		}
		w.apply(req.snap)
	}
}

func (w *Writer) apply(snap Snapshot) {
	if err := w.saver.SaveRaw(w.ctx, snap.Key, snap.Value); err != nil {
		w.failed.Add(1)
		w.logger.Error("error saving to storage", "key", snap.Key, "err", err)
		return
	}
	w.applied.Add(1)
	w.logger.Debug("saved", "key", snap.Key, "bytes", len(snap.Value))
}
