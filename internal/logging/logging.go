// Package logging configures the process-wide charmbracelet logger and the
// HTTP request logger built on it.
package logging

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
)

// New builds a logger writing to w. Verbose enables debug output.
func New(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "termfolio",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// Setup installs a stderr logger as the package-level default.
func Setup(verbose bool) *log.Logger {
	logger := New(os.Stderr, verbose)
	log.SetDefault(logger)
	return logger
}

// ToFile sends the default logger to path, for full-screen programs that own
// the terminal. The returned closer must be closed on exit.
func ToFile(path string, verbose bool) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetDefault(New(f, verbose))
	return f, nil
}

// Discard silences the default logger, e.g. for the stdio MCP server whose
// stdout is the protocol channel.
func Discard() {
	log.SetDefault(New(io.Discard, false))
}

// Requests logs one line per HTTP request.
func Requests(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"dur", time.Since(start).Round(time.Microsecond),
			}
			if id := middleware.GetReqID(r.Context()); id != "" {
				fields = append(fields, "req", id)
			}
			switch {
			case status >= 500:
				logger.Error("request", fields...)
			case status >= 400:
				logger.Warn("request", fields...)
			default:
				logger.Debug("request", fields...)
			}
		})
	}
}
