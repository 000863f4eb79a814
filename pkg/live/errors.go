package live

import "errors"

var (
	// ErrRegistryClosed is returned by Register after Shutdown.
	ErrRegistryClosed = errors.New("live: registry is closed")

	// ErrNilEmitter is returned by Register for a connection without an emitter.
	ErrNilEmitter = errors.New("live: connection emitter is nil")

	// ErrSlowConsumer is returned by Stream.Emit when the buffer stays full until the deadline.
	ErrSlowConsumer = errors.New("live: consumer is too slow, message dropped")

	// ErrConnectionClosed is returned by Stream.Emit after the stream was closed.
	ErrConnectionClosed = errors.New("live: connection is closed")
)
