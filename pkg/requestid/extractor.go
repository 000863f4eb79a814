package requestid

import "github.com/dmitrymomot/rentadmin/pkg/logger"

// LoggerExtractor adds request_id to every log record written with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return logger.ValueExtractor("request_id", FromContext)
}
