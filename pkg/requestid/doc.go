// Package requestid tags every request with an id carried in X-Request-ID.
//
//	r.Use(requestid.Middleware)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Incoming ids are kept when they are 1-128 characters of letters, digits,
// dashes and underscores; anything else is replaced with a fresh UUID.
package requestid
