package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/earned-wage-access/pkg/logger"

	"github.com/google/uuid"
)

const TraceIDHeader = "X-Trace-ID"

// TraceID tags the request logger with a trace id, taken from the caller or
// generated, and echoes it back in the response.
func TraceID(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := logger.WithLogger(r.Context(), base.With("trace_id", traceID))

			w.Header().Set(TraceIDHeader, traceID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
