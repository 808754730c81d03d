package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/vocal-site/internal/app"
	"github.com/pribylovaa/vocal-site/internal/config"
	"github.com/pribylovaa/vocal-site/internal/metrics"
	logpkg "github.com/pribylovaa/vocal-site/internal/pkg/log"
	sitehttp "github.com/pribylovaa/vocal-site/internal/transport/http"
	"github.com/pribylovaa/vocal-site/internal/transport/http/handlers"
	"github.com/pribylovaa/vocal-site/internal/transport/http/middleware"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := logpkg.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)
	log.Info("starting vocal-site", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	m := metrics.New(prometheus.DefaultRegisterer)

	st, err := app.LoadCatalog(rootCtx, *cfg, m)
	if err != nil {
		log.Error("catalog_load_failed", slog.String("source", cfg.Catalog.Source), logpkg.Err(err))
		os.Exit(1)
	}
	log.Info("catalog_loaded", slog.String("source", cfg.Catalog.Source))

	svc, err := app.Build(rootCtx, *cfg, st, m, log)
	if err != nil {
		log.Error("service_init_failed", logpkg.Err(err))
		os.Exit(1)
	}

	defer func() {
		if cerr := svc.Close(); cerr != nil {
			log.Warn("clients_close_failed", logpkg.Err(cerr))
		}
	}()

	log.Info("service_initialized")

	opts := sitehttp.Options{
		Logger:     log,
		Timeout:    cfg.Timeouts.Service,
		Metrics:    m,
		TrustProxy: cfg.HTTP.TrustProxy,
		Site:       handlers.Site{Title: cfg.Site.Title, BaseURL: cfg.Site.BaseURL},
	}

	if cfg.RateLimit.Enabled {
		opts.RateLimiter = middleware.NewRateLimiter(rootCtx, cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	var ready int32 // 0 - not ready; 1 - ready

	opsMux := http.NewServeMux()
	opsMux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	opsMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	opsMux.Handle("/metrics", promhttp.Handler())

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           sitehttp.NewRouter(svc, opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	opsSrv := &http.Server{
		Addr:              cfg.Metrics.Addr(),
		Handler:           opsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	httpLn, err := net.Listen("tcp", httpSrv.Addr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpSrv.Addr), logpkg.Err(err))
		os.Exit(1)
	}

	opsLn, err := net.Listen("tcp", opsSrv.Addr)
	if err != nil {
		_ = httpLn.Close()
		log.Error("metrics_listen_failed", slog.String("addr", opsSrv.Addr), logpkg.Err(err))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpSrv.Addr))
	log.Info("metrics_listen_start", slog.String("addr", opsSrv.Addr))

	g, gCtx := errgroup.WithContext(rootCtx)

	g.Go(func() error { return serve(httpSrv, httpLn) })
	g.Go(func() error { return serve(opsSrv, opsLn) })

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutdown_requested")
		atomic.StoreInt32(&ready, 0)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return errors.Join(httpSrv.Shutdown(shutdownCtx), opsSrv.Shutdown(shutdownCtx))
	})

	atomic.StoreInt32(&ready, 1)
	log.Info("site_ready")

	if err := g.Wait(); err != nil {
		log.Error("http_serve_failed", logpkg.Err(err))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

// serve отдаёт ln серверу; штатное закрытие не ошибка.
func serve(srv *http.Server, ln net.Listener) error {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
