// Package events records user actions for analytics and auditing.
//
// Logging an event never fails the caller. LogEvent has no return value:
// validation problems and storage failures are written to slog and counted,
// then dropped. There is no batching and no retry.
//
//	store := events.NewMultiStorage(
//	    events.NewMongoStorage(db, ""),
//	    events.NewOpenSearchStorage(searchClient, ""),
//	)
//	log := events.NewLogger(store, events.WithAsync(), events.WithTimeout(3*time.Second))
//	defer log.Close(context.Background())
//
//	log.LogEvent(ctx, events.Input{
//	    Type:    "booking.viewed",
//	    UserID:  "u1",
//	    Context: map[string]any{"booking_id": "b42"},
//	})
//
// Writes are detached from the request context, so a client that disconnects
// right after triggering an event does not cancel the write.
package events
