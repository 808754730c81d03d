package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/vocal-site/internal/metrics"
)

// Metrics учитывает запрос в Prometheus по шаблону маршрута chi
// ("/api/content/{type}/{id}"), чтобы не раздувать кардинальность.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()

			next.ServeHTTP(sw, r)

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			m.ObserveHTTP(routeOf(r), r.Method, status, time.Since(start))
		})
	}
}

// routeOf - шаблон маршрута chi; "unmatched", если роутер его не выставил.
// Вызывать после next.ServeHTTP: шаблон собирается по мере прохода роутера.
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}

	return "unmatched"
}
