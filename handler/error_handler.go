package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rentadmin/pkg/logger"
)

// JSONErrorHandler renders errors through JSONError. Client errors are logged
// at warn level, server errors at error level.
func JSONErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		resp := JSONError(err).(*jsonResponse)

		r := ctx.Request()
		level := slog.LevelWarn
		if resp.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(ctx, level, "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", resp.status),
			logger.Error(err),
		)

		if err := resp.Render(ctx.ResponseWriter(), r); err != nil {
			log.DebugContext(ctx, "error response not written", logger.Error(err))
		}
	}
}
