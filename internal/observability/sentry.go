// Package observability wires error reporting to Sentry. Everything here is a
// no-op when no DSN is configured.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"fittrack-go/internal/config"
	"fittrack-go/pkg/logger"
)

const flushTimeout = 2 * time.Second

// Init configures the global Sentry hub. It reports whether reporting is
// enabled.
func Init(cfg config.SentryConfig, log logger.Logger) (bool, error) {
	if cfg.DSN == "" {
		log.Info("observability: sentry DSN not configured, error reporting disabled")
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		TracesSampleRate: cfg.SampleRate,
		BeforeSend:       scrubEvent,
	})
	if err != nil {
		return false, fmt.Errorf("sentry init: %w", err)
	}

	log.Info("observability: sentry initialized", "environment", cfg.Environment, "release", cfg.Release)
	return true, nil
}

func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request != nil && event.Request.Headers != nil {
		delete(event.Request.Headers, "Authorization")
		delete(event.Request.Headers, "Cookie")
	}
	return event
}

func Flush() bool {
	return sentry.Flush(flushTimeout)
}

// Middleware attaches a hub to each request and reports panics before
// re-panicking into the router's recoverer.
func Middleware(next http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(next)
}

// Reporter implements logger.Reporter on top of the global hub.
type Reporter struct {
	hub *sentry.Hub
}

func NewReporter() *Reporter {
	return &Reporter{hub: sentry.CurrentHub()}
}

func (r *Reporter) Report(err error, message string, args ...any) {
	if err == nil {
		err = fmt.Errorf("%s", message)
	}

	fields := attrs(args)
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", message)
		scope.SetContext("log", sentry.Context(fields))
		if userID, ok := fields["user_id"].(string); ok && userID != "" {
			scope.SetUser(sentry.User{ID: userID})
		}
		r.hub.CaptureException(err)
	})
}

// attrs turns slog-style key/value pairs into a map, ignoring a dangling key.
func attrs(args []any) map[string]interface{} {
	out := make(map[string]interface{}, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		out[key] = args[i+1]
	}
	return out
}
