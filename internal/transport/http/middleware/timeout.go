package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/vocal-site/internal/metrics"
	logctx "github.com/pribylovaa/vocal-site/internal/pkg/log"
)

// Timeout ограничивает обработку запроса временем d (timeouts.service).
// Уже выставленный deadline не трогаем. Значение <=0 делает мидлвар no-op.
//
// Запрос, отработавший дольше d, пишется в лог и в vocal_http_timeouts_total:
// на сайте так заканчиваются только ожидания download/newsletter, если
// задержка конфига больше таймаута.
func Timeout(d time.Duration, m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))

			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return
			}

			route := routeOf(r)
			m.Timeout(route)

			logctx.From(ctx).LogAttrs(ctx, slog.LevelWarn, "request_deadline_exceeded",
				slog.String("route", route),
				slog.String("path", r.URL.Path),
				slog.Duration("timeout", d),
			)
		})
	}
}
