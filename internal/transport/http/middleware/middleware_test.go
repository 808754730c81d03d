package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/vocal-site/internal/metrics"
)

// capHandler - тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs из каждой записи в map[string]any.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()
	return req
}

type errEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-begin")
				next.ServeHTTP(w, r)
				order = append(order, name+"-end")
			})
		}
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	Chain(final, mk("m1"), mk("m2")).ServeHTTP(rr, makeReq("/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	var seenHeader, seenCtx string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenHeader = r.Header.Get(HeaderRequestID)
		seenCtx = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	Chain(h, RequestID()).ServeHTTP(rr, makeReq("/rid"))

	respID := rr.Header().Get(HeaderRequestID)
	require.Len(t, respID, 32) // 16 байт -> 32 hex-символа
	require.Equal(t, respID, seenHeader)
	require.Equal(t, respID, seenCtx)
}

func TestRequestID_UseExisting(t *testing.T) {
	const given = "abc123-existing-id"

	var seenCtx string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCtx = RequestIDFrom(r.Context())
	})

	rr := httptest.NewRecorder()
	req := makeReq("/rid2")
	req.Header.Set(HeaderRequestID, given)
	Chain(h, RequestID()).ServeHTTP(rr, req)

	require.Equal(t, given, rr.Header().Get(HeaderRequestID))
	require.Equal(t, given, seenCtx)
}

func TestRecover_PanicTo500(t *testing.T) {
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	req := makeReq("/panic")
	req.Header.Set(HeaderRequestID, "rid-123")
	Chain(h, Recover()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "internal", env.Error.Code)
	require.Equal(t, "rid-123", env.Error.RequestID)
	require.NotContains(t, rr.Body.String(), "boom")
}

func TestRecover_AbortHandlerPassesThrough(t *testing.T) {
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		Chain(h, Recover()).ServeHTTP(httptest.NewRecorder(), makeReq("/abort"))
	})
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var has bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, has = r.Context().Deadline()
	})

	Chain(h, Timeout(time.Second, nil)).ServeHTTP(httptest.NewRecorder(), makeReq("/t"))
	require.True(t, has)

	Chain(h, Timeout(0, nil)).ServeHTTP(httptest.NewRecorder(), makeReq("/t"))
	require.False(t, has)
}

func TestTimeout_DeadlineHitIsLoggedAndCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	ch := &capHandler{}

	r := chi.NewRouter()
	r.Use(Logging(slog.New(ch)), Timeout(10*time.Millisecond, m))
	r.Post("/api/content/{type}/{id}/download", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusGatewayTimeout)
	})
	r.Get("/fast", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), makeReq("/fast"))
	require.Equal(t, 1, ch.count, "only the access record")

	req := httptest.NewRequest(http.MethodPost, "/api/content/Report/3/download", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	// запись таймаута + запись доступа
	require.Equal(t, 3, ch.count)

	expected := `
# HELP vocal_http_timeouts_total Requests that ran past the service timeout
# TYPE vocal_http_timeouts_total counter
vocal_http_timeouts_total{route="/api/content/{type}/{id}/download"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "vocal_http_timeouts_total"))
}

func TestLogging_WritesRecord_WithStatusDurBytesAndRequestID(t *testing.T) {
	h := &capHandler{}
	logger := slog.New(h)

	const rid = "rid-456"
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Не вызываем WriteHeader - статус должен стать 200 после Write.
		_, _ = w.Write([]byte("0123456789"))
	})

	handler := Chain(final, RequestID(), Logging(logger))

	rr := httptest.NewRecorder()
	req := makeReq("/log")
	req.Header.Set(HeaderRequestID, rid)
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, h.count)
	require.Equal(t, "http", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)

	require.Equal(t, http.MethodGet, h.attrs["method"])
	require.Equal(t, "/log", h.attrs["path"])
	require.EqualValues(t, http.StatusOK, h.attrs["status"])
	require.EqualValues(t, 10, h.attrs["bytes"])
	require.Equal(t, rid, h.attrs["request_id"])

	_, hasDur := h.attrs["dur"]
	require.True(t, hasDur)
}

func TestLogging_ServerErrorIsError(t *testing.T) {
	h := &capHandler{}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	Chain(final, Logging(slog.New(h))).ServeHTTP(httptest.NewRecorder(), makeReq("/x"))
	require.Equal(t, slog.LevelError, h.lastLvl)
}

func TestStatusWriter_CountsBytes_AndDefaultStatus200(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := newStatusWriter(rr)

	_, _ = sw.Write([]byte("abcd"))

	require.Equal(t, http.StatusOK, sw.status)
	require.Equal(t, 4, sw.count)
	require.Equal(t, rr, sw.Unwrap())
}

func TestRateLimiter_PerIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1, 2)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := Chain(ok, rl.Middleware())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, makeReq("/api/newsroom"))
		codes = append(codes, rr.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// другой IP - свой бакет
	rr := httptest.NewRecorder()
	req := makeReq("/api/newsroom")
	req.RemoteAddr = "10.0.0.2:5555"
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, makeReq("/api/newsroom"))
	require.Equal(t, "1", rr.Header().Get("Retry-After"))

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "resource_exhausted", env.Error.Code)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 10, 10)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.limiterFor("1.1.1.1")
	now = now.Add(idleTTL + time.Second)
	rl.limiterFor("2.2.2.2")
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	require.Len(t, rl.limiters, 1)
	require.Contains(t, rl.limiters, "2.2.2.2")
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/content/{type}/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), makeReq("/api/content/Report/999"))
	r.ServeHTTP(httptest.NewRecorder(), makeReq("/api/content/Report/3"))

	n, err := testutil.GatherAndCount(reg, "vocal_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, n, "one series per route pattern")
}
