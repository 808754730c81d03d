package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pribylovaa/vocal-site/internal/metrics"
	"github.com/pribylovaa/vocal-site/internal/service"
	"github.com/pribylovaa/vocal-site/internal/transport/http/handlers"
	"github.com/pribylovaa/vocal-site/internal/transport/http/middleware"
)

// Options - параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	Metrics *metrics.Metrics
	// RateLimiter - лимит запросов к /api на IP; nil - без лимита.
	RateLimiter *middleware.RateLimiter
	// TrustProxy - брать IP клиента из X-Forwarded-For/X-Real-IP.
	TrustProxy bool
	Site       handlers.Site
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	if opts.TrustProxy {
		root.Use(chimw.RealIP)
	}

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования: id попадает в attrs
		middleware.Logging(opts.Logger),
		middleware.Metrics(opts.Metrics),
	)

	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout, opts.Metrics))
	}

	h := handlers.New(svc, opts.Site)

	root.Get("/feed.xml", h.Feed)

	root.Route("/api", func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Middleware())
		}

		registerRoutes(r, h)
	})

	return root
}

// registerRoutes - единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// pages
	r.Get("/pages/{slug}", h.Page)
	r.Get("/home", h.Home)
	r.Get("/social", h.Social)

	// catalog
	r.Get("/newsroom", h.Newsroom)
	r.Get("/listings/{listing}", h.Listing)
	r.Get("/content/{type}/{id}", h.Detail)
	r.Get("/content/{type}/{id}/share", h.Share)
	r.Post("/content/{type}/{id}/download", h.Download)

	// forms
	r.Post("/newsletter", h.Subscribe)
	r.Post("/contact", h.Contact)
	r.Post("/donations", h.Donate)
}

var _ handlers.Service = (*service.Service)(nil)
