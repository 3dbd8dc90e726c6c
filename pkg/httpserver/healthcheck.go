package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopstack/notifykit/pkg/logger"
)

// HealthCheckHandler returns a handler usable for both liveness and
// readiness probes. With no dependency checks supplied it answers 200
// "ALIVE". With checks it runs each one and answers 200 "READY" or, on the
// first failure, 500 "NOT_READY".
func HealthCheckHandler(ctx context.Context, log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
