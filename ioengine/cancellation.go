package ioengine

import "context"

// CancellationHook is queried as a boolean: it returns true once the
// operation using it should unwind. It must be safe to call concurrently
// with the engine's work, since it is typically backed by a flag another
// goroutine (e.g. a UI event loop) sets.
type CancellationHook func(opaque any) bool

// Cancellation pairs a hook with the opaque value it is called with. The
// zero value never cancels.
type Cancellation struct {
	Hook   CancellationHook
	Opaque any
}

// Cancelled reports whether the operation carrying this Cancellation should
// stop.
func (c Cancellation) Cancelled() bool {
	if c.Hook == nil {
		return false
	}

	return c.Hook(c.Opaque)
}

// FromContext adapts a context.Context into a Cancellation, so a caller
// driving the engine from a context-based program (signal handling, request
// deadlines) doesn't have to hand-roll a hook.
func FromContext(ctx context.Context) Cancellation {
	return Cancellation{
		Hook: func(opaque any) bool {
			c, _ := opaque.(context.Context)
			if c == nil {
				return false
			}

			return c.Err() != nil
		},
		Opaque: ctx,
	}
}
