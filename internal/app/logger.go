package app

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// NewLogger writes colored structured logs to w. Errors are highlighted.
// stdout is reserved for the stdio transport, so w is normally stderr.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "2006-01-02 15:04:05.000Z07:00",
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
	return slog.New(handler)
}
