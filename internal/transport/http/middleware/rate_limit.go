package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	logctx "github.com/pribylovaa/vocal-site/internal/pkg/log"
	"github.com/pribylovaa/vocal-site/internal/service"
	apierrors "github.com/pribylovaa/vocal-site/internal/transport/http/errors"
)

// idleTTL - через сколько простоя лимитер IP выкидывается.
const idleTTL = 5 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter - token bucket на клиентский IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter создаёт лимитер rps/burst на IP.
// Устаревшие записи чистятся фоном до окончания ctx.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}

	go rl.cleanupLoop(ctx)

	return rl
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	if l, ok := rl.limiters[ip]; ok {
		l.lastSeen = now
		return l.limiter
	}

	l := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[ip] = &ipLimiter{limiter: l, lastSeen: now}

	return l
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, l := range rl.limiters {
		if now.Sub(l.lastSeen) > idleTTL {
			delete(rl.limiters, ip)
		}
	}
}

// Middleware отвечает 429 resource_exhausted при исчерпании бакета IP.
// IP берётся из RemoteAddr (за прокси его выставляет chi middleware.RealIP).
func (rl *RateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !rl.limiterFor(ip).Allow() {
				retryAfter := max(int(1.0/float64(rl.rate)), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				logctx.From(r.Context()).Warn("rate_limited",
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
				)

				apierrors.WriteError(w, r, service.ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
