package dirstream

import (
	"io"
	"sync"
)

// boundedBuffer is a fixed-capacity byte FIFO shared between exactly one
// producer and one consumer. The producer blocks on notFull while the
// buffer is at capacity; the consumer blocks on notEmpty while it is empty.
// Two distinct conditions over one mutex: a single shared condition can
// deadlock when both sides wait for a signal only the other can send.
type boundedBuffer struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	data     []byte
	capacity int
	closed   bool  // producer finished, no further writes
	err      error // abort reason; the first error wins and sticks
}

func newBoundedBuffer(capacity int) *boundedBuffer {
	b := &boundedBuffer{capacity: capacity}
	b.notFull = sync.NewCond(&b.mu)
	b.notEmpty = sync.NewCond(&b.mu)
	return b
}

// Write appends p, blocking piecewise whenever the buffer is at capacity,
// so buffered bytes never exceed the configured capacity. Returns the abort
// error as soon as one is set, waking the producer out of a full-buffer
// wait.
func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	written := 0
	for written < len(p) {
		for len(b.data) >= b.capacity && b.err == nil {
			b.notFull.Wait()
		}
		if b.err != nil {
			return written, b.err
		}

		n := b.capacity - len(b.data)
		if n > len(p)-written {
			n = len(p) - written
		}
		b.data = append(b.data, p[written:written+n]...)
		written += n
		b.notEmpty.Signal()
	}

	return written, nil
}

// Next returns everything currently buffered, blocking while the buffer is
// empty and the producer is still running. Returns io.EOF once the producer
// has finished cleanly and the buffer is drained; returns the captured
// abort error, repeatedly, if the stream aborted.
func (b *boundedBuffer) Next() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(b.data) == 0 && !b.closed && b.err == nil {
		b.notEmpty.Wait()
	}

	if b.err != nil {
		return nil, b.err
	}
	if len(b.data) > 0 {
		out := b.data
		b.data = nil
		b.notFull.Broadcast()
		return out, nil
	}
	return nil, io.EOF
}

// CloseWrite marks the producer side finished. A nil err means a clean
// drain; a non-nil err aborts the stream. An earlier abort error is never
// overwritten, so the first failure is the one the consumer sees.
func (b *boundedBuffer) CloseWrite(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil && b.err == nil {
		b.err = err
	}
	b.closed = true
	b.notEmpty.Broadcast()
	b.notFull.Broadcast()
}

// Abort force-wakes both sides with err so neither can block forever on a
// counterpart that is no longer interested. Idempotent; the first error
// sticks.
func (b *boundedBuffer) Abort(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err == nil {
		b.err = err
	}
	b.notEmpty.Broadcast()
	b.notFull.Broadcast()
}
