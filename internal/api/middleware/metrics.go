package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avdk/SBM-ReservationService/pkg/metrics"
)

// MetricsMiddleware собирает счётчик и длительность HTTP запросов.
// В качестве path берётся шаблон маршрута mux, а не фактический URL,
// чтобы не плодить лейблы на каждый ID.
func MetricsMiddleware(m *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}

			m.IncHTTPRequest(serviceName, r.Method, path, rec.status)
			m.ObserveHTTPRequestDuration(serviceName, r.Method, path, time.Since(start))
		})
	}
}

// statusRecorder запоминает статус, отданный обработчиком
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
