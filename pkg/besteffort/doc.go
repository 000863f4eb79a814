// Package besteffort formalizes the "errors are observability-only" contract used by
// fire-and-forget paths such as analytics logging and live notification push.
//
// A Policy runs an operation, recovers from panics, logs failures to an operational
// channel and counts them. It never returns the failure to its caller, which makes the
// contract assertable in tests instead of relying on scattered catch-all blocks.
//
// # Usage
//
//	policy := besteffort.New("events", besteffort.WithLogger(log))
//
//	policy.Do(ctx, "store_event", func(ctx context.Context) error {
//		return storage.Store(ctx, event)
//	})
//
//	// Diagnostics only
//	fmt.Println(policy.Stats())
//
// Counters are owned by the Policy instance; there is no package-level error state.
package besteffort
