package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Init installs the default slog logger: text at debug level in
// development, JSON at info level otherwise. With a Sentry DSN, error
// records are also reported to Sentry. A Sentry setup failure is logged
// and otherwise ignored.
func Init(isDev bool, sentryDSN, environment string) {
	handler := NewHandler(os.Stdout, isDev)
	slog.SetDefault(slog.New(handler))

	if sentryDSN == "" {
		return
	}

	reporter, err := sentryHandler(sentryDSN, environment)
	if err != nil {
		slog.Warn("sentry disabled", "error", err)
		return
	}
	slog.SetDefault(slog.New(fanout([]slog.Handler{handler, reporter})))
	slog.Info("sentry error reporting enabled", "environment", environment)
}

func sentryHandler(dsn, environment string) (slog.Handler, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return nil, err
	}
	return slogsentry.Option{Level: slog.LevelError}.NewSentryHandler(), nil
}

// NewHandler returns the stdout handler for the environment.
func NewHandler(w io.Writer, isDev bool) slog.Handler {
	if isDev {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

func fanout(handlers []slog.Handler) slog.Handler {
	if len(handlers) == 1 {
		return handlers[0]
	}
	return slogmulti.Fanout(handlers...)
}

// Flush waits for buffered Sentry events before the process exits.
func Flush() {
	sentry.Flush(2 * time.Second)
}
