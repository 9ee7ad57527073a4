package httpapi

import (
	"net/http"

	"github.com/riskibarqy/touchline/internal/platform/logging"
)

// RouterOptions carries the optional collaborators of NewRouter.
type RouterOptions struct {
	Logger             *logging.Logger
	CORSAllowedOrigins []string
	Metrics            RequestRecorder
	MetricsHandler     http.Handler
}

func NewRouter(handler *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.MetricsHandler)
	registerFormationRoutes(mux, handler)
	registerBoardRoutes(mux, handler)
	registerSelectionRoutes(mux, handler)
	registerPeriodRoutes(mux, handler)
	registerSquadRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, RequestMetrics(opts.Metrics, mux)))))
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
