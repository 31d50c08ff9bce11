// Package speech provides asynchronous speech output for committed
// signs: a FIFO of pending utterances consumed by a single worker.
package speech

import (
	"context"
	"errors"
	"log"
	"sync"
)

// QueueSize bounds the number of pending utterances. Enqueue never
// blocks; when the queue is full the newest utterance is dropped.
const QueueSize = 16

// ErrShutdownTimeout is returned when Shutdown's context expires before
// the worker exits.
var ErrShutdownTimeout = errors.New("speech: shutdown timed out")

// Dispatcher queues utterances and speaks them one at a time through a
// Synthesizer on a dedicated worker goroutine. A Dispatcher built with
// a nil synthesizer is a silent no-op: every method is safe to call and
// does nothing, so an unavailable speech backend never surfaces as an
// error to callers.
type Dispatcher struct {
	synth  Synthesizer
	queue  chan utterance
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	current  context.CancelFunc // cancels the in-flight utterance
	speaking bool
	closed   bool
	gen      uint64 // bumped by Stop; stale utterances are discarded
}

// utterance is one queued text, stamped with the Stop generation it was
// enqueued under. The worker drops utterances from an older generation,
// which closes the window where Stop has drained the queue but the
// worker already holds a dequeued text it has not started speaking.
type utterance struct {
	text string
	gen  uint64
}

// NewDispatcher creates a Dispatcher and starts its worker. Pass a nil
// synthesizer to get a disabled no-op dispatcher.
func NewDispatcher(synth Synthesizer) *Dispatcher {
	d := &Dispatcher{synth: synth}
	if synth == nil {
		return d
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.queue = make(chan utterance, QueueSize)
	d.cancel = cancel
	d.done = make(chan struct{})
	go d.run(ctx)
	return d
}

// Enabled reports whether a speech backend is attached.
func (d *Dispatcher) Enabled() bool {
	return d != nil && d.synth != nil
}

// Enqueue adds text to the speech queue without blocking. Empty text,
// a disabled dispatcher, and a full queue are all silent no-ops.
func (d *Dispatcher) Enqueue(text string) {
	if !d.Enabled() || text == "" {
		return
	}

	d.mu.Lock()
	closed := d.closed
	gen := d.gen
	d.mu.Unlock()
	if closed {
		return
	}

	select {
	case d.queue <- utterance{text: text, gen: gen}:
	default:
		log.Printf("speech: queue full, dropping %q", text)
	}
}

// Speaking reports whether an utterance is currently being spoken.
func (d *Dispatcher) Speaking() bool {
	if !d.Enabled() {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.speaking || len(d.queue) > 0
}

// Stop drains all pending utterances and interrupts the one in flight.
// Utterances enqueued before Stop are never spoken after it returns;
// the worker stays alive for future Enqueue calls.
func (d *Dispatcher) Stop() {
	if !d.Enabled() {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Invalidate everything enqueued so far, including a text the
	// worker has dequeued but not yet started speaking.
	d.gen++

	for {
		select {
		case <-d.queue:
		default:
			if d.current != nil {
				d.current()
			}
			return
		}
	}
}

// Shutdown stops the worker and waits for it to exit, bounded by the
// context deadline. It is safe to call more than once.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	if !d.Enabled() {
		return nil
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		d.cancel()
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return d.synth.Close()
	case <-ctx.Done():
		return ErrShutdownTimeout
	}
}

// run is the worker loop: one utterance spoken to completion before the
// next is dequeued.
func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)

	for {
		select {
		case <-ctx.Done():
			return
		case u := <-d.queue:
			d.speak(ctx, u)
		}
	}
}

func (d *Dispatcher) speak(ctx context.Context, u utterance) {
	utterCtx, cancel := context.WithCancel(ctx)

	d.mu.Lock()
	if u.gen != d.gen {
		// A Stop raced the dequeue; this utterance was cancelled.
		d.mu.Unlock()
		cancel()
		return
	}
	d.current = cancel
	d.speaking = true
	d.mu.Unlock()

	err := d.synth.Speak(utterCtx, u.text)

	d.mu.Lock()
	d.current = nil
	d.speaking = false
	d.mu.Unlock()
	cancel()

	// Interrupted utterances are expected; anything else is logged and
	// swallowed so speech failures never reach the detection path.
	if err != nil && utterCtx.Err() == nil {
		log.Printf("speech: %v", err)
	}
}
