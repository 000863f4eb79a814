package live

import (
	"context"
	"errors"
	"sync"
)

// Stream is a buffered Emitter for long-lived transports such as SSE.
// The registry side calls Emit; the transport goroutine drains Messages and writes
// them to the client. The message channel is never closed, so a late Emit can't
// panic; consumers select on Done as well.
type Stream[T any] struct {
	ch        chan T
	done      chan struct{}
	closeOnce sync.Once
}

// NewStream creates a stream with the given buffer size (minimum 1).
func NewStream[T any](bufferSize int) *Stream[T] {
	return &Stream[T]{
		ch:   make(chan T, max(bufferSize, 1)),
		done: make(chan struct{}),
	}
}

// Emit queues msg. When the buffer is full it waits until ctx is done and then drops
// the message with ErrSlowConsumer.
func (s *Stream[T]) Emit(ctx context.Context, msg T) error {
	select {
	case <-s.done:
		return ErrConnectionClosed
	default:
	}

	// Free buffer space wins even when ctx is already done.
	select {
	case s.ch <- msg:
		return nil
	default:
	}

	select {
	case s.ch <- msg:
		return nil
	case <-s.done:
		return ErrConnectionClosed
	case <-ctx.Done():
		return errors.Join(ErrSlowConsumer, ctx.Err())
	}
}

// Messages returns the channel the transport drains.
func (s *Stream[T]) Messages() <-chan T {
	return s.ch
}

// Done is closed by Close.
func (s *Stream[T]) Done() <-chan struct{} {
	return s.done
}

// Close marks the stream closed. Idempotent.
func (s *Stream[T]) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
