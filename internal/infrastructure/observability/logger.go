package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

type requestIDKey struct{}

// InitLogger installs the global zerolog logger. Development gets a console
// writer at debug level; other environments log JSON with caller at info.
// A non-empty level (e.g. "warn") overrides the environment default.
func InitLogger(serviceName, env, level string) error {
	lvl, err := resolveLevel(env, level)
	if err != nil {
		return err
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(lvl)
	log.Logger = newLogger(serviceName, env, os.Stdout)
	return nil
}

func newLogger(serviceName, env string, out io.Writer) zerolog.Logger {
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		return zerolog.New(out).With().Timestamp().Str("service", serviceName).Logger()
	}
	return zerolog.New(out).With().Timestamp().Caller().Str("service", serviceName).Logger()
}

func resolveLevel(env, level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		if env == "development" {
			return zerolog.DebugLevel, nil
		}
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// ContextWithRequestID tags ctx so loggers derived from it carry the id.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id set by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggerFromContext returns the global logger enriched with the request id
// and the active trace and span ids found in ctx.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	lc := log.With()
	if id := RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		lc = lc.Str("trace_id", sc.TraceID().String()).Str("span_id", sc.SpanID().String())
	}
	logger := lc.Logger()
	return &logger
}
