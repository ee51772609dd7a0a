package httpapi

import (
	"net/http"

	"github.com/riskibarqy/roadto100k/internal/observability"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
)

type RouterOptions struct {
	CORSAllowedOrigins []string
	// Metrics is optional; /metrics is only mounted when it is set.
	Metrics *observability.Metrics
}

func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.Metrics)
	registerPublicRoutes(mux, handler, verifier)
	registerAuthorizedRoutes(mux, handler, verifier)

	routeOf := func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}

	return RequestTracing(RequestLogging(logger, opts.Metrics, routeOf, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
