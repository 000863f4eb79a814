// Package logger builds the service's *slog.Logger and keeps attribute names
// consistent across packages.
//
// New creates a JSON or text handler, applies static attributes and wraps it with
// LogHandlerDecorator so request-scoped values (request id, client ip) are injected
// from context on every record.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "rentadmin"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "push failed",
//		logger.NotificationID(n.ID),
//		logger.UserID(n.SubjectID),
//		logger.Error(err),
//	)
//
// Attribute helpers return an empty slog.Attr for empty identities or nil errors,
// which slog drops, so call sites need no nil checks.
package logger
