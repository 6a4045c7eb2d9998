package asynchandler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/handler/handlertest"
	"github.com/philipp01105/nlogconf/registry"
)

func TestAsyncHandler_DeliversOnClose(t *testing.T) {
	rec := handlertest.NewRecorder()
	h := NewAsyncHandler(AsyncConfig{Handler: rec, BufferSize: 100})

	entry := core.GetEntry()
	for i := 0; i < 10; i++ {
		entry.Level = core.InfoLevel
		entry.Message = "msg"
		if err := h.Handle(entry); err != nil {
			t.Fatal(err)
		}
	}
	core.PutEntry(entry)

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if got := len(rec.Messages()); got != 10 {
		t.Errorf("delivered %d entries, want 10", got)
	}
	if rec.Closed() != 1 {
		t.Errorf("inner closed %d times, want 1", rec.Closed())
	}
	if err := h.Handle(&core.Entry{Level: core.InfoLevel}); !errors.Is(err, ErrClosed) {
		t.Errorf("Handle after Close = %v, want ErrClosed", err)
	}
}

// gate blocks Handle until released.
type gate struct {
	handler.Base
	release chan struct{}
	mu      sync.Mutex
	got     []string
}

func (g *gate) Handle(e *core.Entry) error {
	<-g.release
	g.mu.Lock()
	g.got = append(g.got, e.Message)
	g.mu.Unlock()
	return nil
}

func (g *gate) Close() error { return nil }

func TestAsyncHandler_DropNewest(t *testing.T) {
	g := &gate{release: make(chan struct{})}
	h := NewAsyncHandler(AsyncConfig{
		Handler:        g,
		BufferSize:     1,
		OverflowPolicy: handler.UniformPolicy(handler.DropNewest),
	})

	// The worker takes the first entry and blocks on the gate; the
	// second fills the queue; the rest are dropped.
	h.Handle(&core.Entry{Level: core.InfoLevel, Message: "first"})
	time.Sleep(20 * time.Millisecond)
	for i := 0; i < 5; i++ {
		h.Handle(&core.Entry{Level: core.InfoLevel, Message: "extra"})
	}

	if got := h.Stats().DroppedTotal[core.InfoLevel]; got != 4 {
		t.Errorf("dropped %d, want 4", got)
	}
	close(g.release)
	h.Close()
}

func TestAsyncHandler_BlockFallsBackToSync(t *testing.T) {
	g := &gate{release: make(chan struct{})}
	h := NewAsyncHandler(AsyncConfig{
		Handler:        g,
		BufferSize:     1,
		OverflowPolicy: handler.UniformPolicy(handler.Block),
		BlockTimeout:   10 * time.Millisecond,
	})

	h.Handle(&core.Entry{Level: core.ErrorLevel, Message: "first"})
	time.Sleep(20 * time.Millisecond)
	h.Handle(&core.Entry{Level: core.ErrorLevel, Message: "queued"})

	done := make(chan struct{})
	go func() {
		h.Handle(&core.Entry{Level: core.ErrorLevel, Message: "blocked"})
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	close(g.release)
	<-done

	if h.Stats().BlockedTotal != 1 {
		t.Errorf("BlockedTotal = %d, want 1", h.Stats().BlockedTotal)
	}
	h.Close()
}

type failing struct {
	handler.Base
}

func (f *failing) Handle(*core.Entry) error { return errors.New("boom") }
func (f *failing) Close() error             { return nil }

func TestAsyncHandler_ReportsErrors(t *testing.T) {
	var mu sync.Mutex
	var seen []error
	h := NewAsyncHandler(AsyncConfig{
		Handler: &failing{},
		OnError: func(err error) {
			mu.Lock()
			seen = append(seen, err)
			mu.Unlock()
		},
	})
	h.Handle(&core.Entry{Level: core.InfoLevel})
	h.Handle(&core.Entry{Level: core.InfoLevel})
	h.Close()

	if h.Errors() != 2 {
		t.Errorf("Errors() = %d, want 2", h.Errors())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Errorf("OnError called %d times, want 2", len(seen))
	}
}

func TestAsyncHandler_InnerLevel(t *testing.T) {
	rec := handlertest.NewRecorder()
	rec.SetLevel(core.WarnLevel)
	h := NewAsyncHandler(AsyncConfig{Handler: rec})
	h.Handle(&core.Entry{Level: core.InfoLevel, Message: "skip"})
	h.Handle(&core.Entry{Level: core.WarnLevel, Message: "keep"})
	h.Close()

	if got := rec.Messages(); len(got) != 1 || got[0] != "keep" {
		t.Errorf("delivered %v", got)
	}
}

func TestTarget(t *testing.T) {
	rec := handlertest.NewRecorder()
	target := Target()
	inst, err := target.New(registry.NewArgs(target.Params, []interface{}{rec, 8, "drop_oldest", 50, "2s"}))
	if err != nil {
		t.Fatal(err)
	}
	h := inst.(*AsyncHandler)
	defer h.Close()

	if cap(h.queue) != 8 {
		t.Errorf("queue capacity = %d, want 8", cap(h.queue))
	}
	if h.overflowPolicy[core.ErrorLevel] != handler.DropOldest {
		t.Errorf("policy = %v, want DropOldest", h.overflowPolicy[core.ErrorLevel])
	}
	if h.blockTimeout != 50*time.Millisecond || h.drainTimeout != 2*time.Second {
		t.Errorf("timeouts = %v/%v", h.blockTimeout, h.drainTimeout)
	}
	if h.Inner() != rec {
		t.Error("expected wrapped recorder")
	}

	if _, err := target.New(registry.NewArgs(target.Params, []interface{}{rec, 8, "sideways"})); err == nil {
		t.Error("expected error for unknown overflow policy")
	}
}
