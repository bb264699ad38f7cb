package logging

import (
	"log/slog"
	"os"
)

// New returns a JSON logger on stdout tagged with the service name.
// Development builds log at debug level.
func New(service, env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", service)
}
