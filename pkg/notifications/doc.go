// Package notifications creates, stores and pushes user-facing notifications.
//
// A notification is addressed to a user (SubjectID), to every holder of a role
// (AudienceRole), or to everyone when both are empty. The Dispatcher writes the
// record first and only then pushes it to live connections, so the store is the
// source of truth and live delivery is a best-effort convenience.
//
// # Usage
//
//	registry := live.New[notifications.Payload]()
//	storage := notifications.NewMongoStorage(db)
//	dispatcher := notifications.NewDispatcher(storage, registry)
//
//	n, err := dispatcher.CreateAndPush(ctx, notifications.BookingApproved("u1", "b42"))
//	if errors.Is(err, notifications.ErrValidation) {
//	    // bad input, nothing stored
//	}
//
// # Reading
//
// Readers are identified by a Recipient. A recipient sees records addressed to
// their user id, to their role, and broadcasts:
//
//	r := notifications.Recipient{UserID: "u1", Role: "manager"}
//	unread, _ := dispatcher.CountUnread(ctx, r)
//	_ = dispatcher.MarkRead(ctx, r, n.ID)
//
// Read state lives on the record. Role and broadcast records are shared, so
// marking one read marks it for every recipient that can see it.
package notifications
