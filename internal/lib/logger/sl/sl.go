package sl

import (
	"log/slog"

	"github.com/dariasmyr/stopwatch/duration"
)

func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Elapsed logs c in the adaptive duration format.
func Elapsed(key string, c duration.Components) slog.Attr {
	return slog.String(key, duration.Format(c).String())
}
