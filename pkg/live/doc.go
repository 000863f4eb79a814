// Package live keeps the process-wide set of currently connected delivery channels
// and fans payloads out to the ones matching a subject/role filter.
//
// Each Connection carries an optional subject (user id), an optional audience role and
// an Emitter. The registry only ever calls Emit; the code that registered a connection
// keeps ownership of its transport and must call the returned unregister function when
// the transport ends. Unregistering is idempotent.
//
// Delivery is best-effort and at-most-once: a connection absent at broadcast time gets
// nothing retroactively, a failing or panicking emitter is logged and skipped, and a
// slow emitter is bounded by the registry's emit timeout.
//
// # Matching
//
// With the default MatchAny mode a connection matches when any provided criterion equals
// its own value (subject OR role). MatchAll requires every provided criterion to match.
// Empty criteria fields are ignored; empty Criteria match every connection.
//
// # Usage
//
//	reg := live.New[notifications.Payload](live.WithLogger(log))
//	defer reg.Shutdown(context.Background())
//
//	stream := live.NewStream[notifications.Payload](16)
//	unregister, err := reg.Register(live.Connection[notifications.Payload]{
//		SubjectID:    user.ID,
//		AudienceRole: user.Role,
//		Emitter:      stream,
//	})
//	if err != nil {
//		return err
//	}
//	defer unregister()
//
//	reg.Broadcast(ctx, live.Criteria{SubjectID: "u1"}, payload)
//
// The registry is not shared across processes. Horizontally scaled deployments need
// sticky routing or an external fan-out layer.
package live
