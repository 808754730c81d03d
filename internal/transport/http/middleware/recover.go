package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	logctx "github.com/pribylovaa/vocal-site/internal/pkg/log"
	apierrors "github.com/pribylovaa/vocal-site/internal/transport/http/errors"
)

// errPanic - то, что уходит в конверт ошибки вместо значения паники.
var errPanic = errors.New("internal")

// Recover превращает panic хендлера в 500/internal.
// http.ErrAbortHandler пробрасывается дальше: net/http обрывает им ответ намеренно.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("route", routeOf(r)),
					slog.String("path", r.URL.Path),
					slog.Any("reason", rec),
					slog.String("stack", string(debug.Stack())),
				)

				apierrors.WriteError(w, r, errPanic)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
