package utils

import (
	"log/slog"
	"strings"
)

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	slog.Info(message,
		slog.String("module", strings.ToUpper(module)),
		slog.String("action", action),
		slog.String("request_id", strings.TrimSpace(requestID)),
	)
}
