package asynchandler

import (
	"errors"
	"sync"
	"time"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
)

// ErrClosed is returned by Handle after Close.
var ErrClosed = errors.New("async handler closed")

// AsyncConfig holds configuration for AsyncHandler.
type AsyncConfig struct {
	// Handler receives entries from the background goroutine (required)
	Handler handler.Handler
	// BufferSize is the queue capacity (default: 1024)
	BufferSize int
	// OverflowPolicy per level when the queue is full
	// (default: handler.DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout bounds how long a Block policy waits before writing
	// synchronously (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds how long Close drains the queue (default: 5s)
	DrainTimeout time.Duration
	// OnError receives errors from the wrapped handler in the background
	// goroutine. Nil discards them; they are still counted.
	OnError func(error)
}

// AsyncHandler moves writes to a dedicated goroutine with an isolated
// queue and per-level overflow policy.
type AsyncHandler struct {
	handler.Base
	inner          handler.Handler
	queue          chan *core.Entry
	closed         chan struct{}
	closeOnce      sync.Once
	closeErr       error
	wg             sync.WaitGroup
	overflowPolicy map[core.Level]handler.OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	timers         sync.Pool
	onError        func(error)
	stats          *handler.Stats

	errMu  sync.Mutex
	errors uint64
}

// NewAsyncHandler starts the background goroutine for cfg.Handler.
func NewAsyncHandler(cfg AsyncConfig) *AsyncHandler {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = handler.DefaultLevelPolicy()
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	h := &AsyncHandler{
		Base:           handler.NewBase(core.DebugLevel, true),
		inner:          cfg.Handler,
		queue:          make(chan *core.Entry, cfg.BufferSize),
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		onError:        cfg.OnError,
		stats:          handler.NewStats(),
	}
	h.timers.New = func() interface{} { return handler.NewStoppedTimer() }

	h.wg.Add(1)
	go h.process()
	return h
}

// Inner returns the wrapped handler.
func (h *AsyncHandler) Inner() handler.Handler {
	return h.inner
}

// Handle queues a clone of entry according to the overflow policy for
// its level.
func (h *AsyncHandler) Handle(entry *core.Entry) error {
	select {
	case <-h.closed:
		return ErrClosed
	default:
	}
	if l, ok := h.inner.(handler.Leveled); ok && !l.IsHandling(entry.Level) {
		return nil
	}

	queued := entry.Clone()

	policy, ok := h.overflowPolicy[entry.Level]
	if !ok {
		policy = handler.DropNewest
	}

	switch policy {
	case handler.Block:
		select {
		case h.queue <- queued:
			return nil
		default:
		}
		timer := h.timers.Get().(*time.Timer)
		timer.Reset(h.blockTimeout)
		defer h.releaseTimer(timer)
		select {
		case h.queue <- queued:
			return nil
		case <-timer.C:
			// Timeout - fall back to synchronous write
			h.stats.IncrementBlocked()
			return h.write(queued)
		case <-h.closed:
			return ErrClosed
		}

	case handler.DropOldest:
		select {
		case h.queue <- queued:
			return nil
		default:
			select {
			case old := <-h.queue:
				h.stats.IncrementDropped(old.Level)
			default:
			}
			select {
			case h.queue <- queued:
			default:
				h.stats.IncrementDropped(entry.Level)
			}
			return nil
		}

	default:
		select {
		case h.queue <- queued:
		default:
			h.stats.IncrementDropped(entry.Level)
		}
		return nil
	}
}

// releaseTimer stops timer, drains a pending fire and pools it.
func (h *AsyncHandler) releaseTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	h.timers.Put(timer)
}

func (h *AsyncHandler) write(entry *core.Entry) error {
	err := h.inner.Handle(entry)
	if err == nil {
		h.stats.IncrementProcessed()
	}
	return err
}

func (h *AsyncHandler) report(err error) {
	h.errMu.Lock()
	h.errors++
	h.errMu.Unlock()
	if h.onError != nil {
		h.onError(err)
	}
}

// process handles async log processing
func (h *AsyncHandler) process() {
	defer h.wg.Done()

	for {
		select {
		case entry := <-h.queue:
			if err := h.write(entry); err != nil {
				h.report(err)
			}
		case <-h.closed:
			// Drain remaining entries until empty or the deadline passes
			deadline := time.NewTimer(h.drainTimeout)
			defer deadline.Stop()
			for {
				select {
				case <-deadline.C:
					return
				default:
				}
				select {
				case entry := <-h.queue:
					if err := h.write(entry); err != nil {
						h.report(err)
					}
				default:
					return
				}
			}
		}
	}
}

// Stats returns a snapshot of the current statistics
func (h *AsyncHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Errors returns how many background writes failed.
func (h *AsyncHandler) Errors() uint64 {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	return h.errors
}

// Close drains the queue within the drain timeout and closes the
// wrapped handler. Later calls return the first call's result.
func (h *AsyncHandler) Close() error {
	h.closeOnce.Do(func() {
		close(h.closed)
		h.wg.Wait()
		for n := len(h.queue); n > 0; n-- {
			e := <-h.queue
			h.stats.IncrementDropped(e.Level)
		}
		h.closeErr = h.inner.Close()
	})
	return h.closeErr
}
