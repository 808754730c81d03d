// app собирает зависимости сайта из конфигурации: источник датасета,
// репозиторий в памяти, счётчик заявок, ссылки на файлы и сервисный слой.
// Используется и сервером, и catalogctl.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/vocal-site/internal/config"
	"github.com/pribylovaa/vocal-site/internal/metrics"
	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/service"
	"github.com/pribylovaa/vocal-site/internal/storage"
	"github.com/pribylovaa/vocal-site/internal/storage/memory"
	"github.com/pribylovaa/vocal-site/internal/storage/minio"
	"github.com/pribylovaa/vocal-site/internal/storage/mongo"
	"github.com/pribylovaa/vocal-site/internal/storage/postgres"
	"github.com/pribylovaa/vocal-site/internal/storage/redis"
	"github.com/pribylovaa/vocal-site/internal/storage/seed"
)

// Writer - источник, в который можно выгрузить датасет (catalogctl import).
type Writer interface {
	storage.Source
	Save(ctx context.Context, ds *storage.Dataset) error
}

// OpenSource открывает источник датасета по catalog.source.
func OpenSource(ctx context.Context, cfg config.Config) (storage.Source, error) {
	const op = "app.OpenSource"

	switch cfg.Catalog.Source {
	case config.SourceEmbedded, "":
		return seed.Embedded(), nil
	case config.SourceFile:
		return seed.File(cfg.Catalog.Path), nil
	case config.SourcePostgres:
		src, err := postgres.New(ctx, cfg.DB.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return src, nil
	case config.SourceMongo:
		src, err := mongo.New(ctx, cfg.Mongo.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%s: unknown source %q", op, cfg.Catalog.Source)
	}
}

// OpenWriter открывает внешнее хранилище для выгрузки: postgres или mongo.
func OpenWriter(ctx context.Context, cfg config.Config, target string) (Writer, error) {
	const op = "app.OpenWriter"

	switch target {
	case config.SourcePostgres:
		if cfg.DB.URL == "" {
			return nil, fmt.Errorf("%s: db.url is required", op)
		}
		w, err := postgres.New(ctx, cfg.DB.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return w, nil
	case config.SourceMongo:
		if cfg.Mongo.URL == "" {
			return nil, fmt.Errorf("%s: mongo.url is required", op)
		}
		w, err := mongo.New(ctx, cfg.Mongo.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%s: target must be postgres or mongo, got %q", op, target)
	}
}

// LoadDataset читает снапшот из выбранного источника с таймаутом catalog.load_timeout.
func LoadDataset(ctx context.Context, cfg config.Config) (*storage.Dataset, error) {
	const op = "app.LoadDataset"

	if cfg.Catalog.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
		defer cancel()
	}

	src, err := OpenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ds, nil
}

// LoadCatalog строит неизменяемый репозиторий из источника конфигурации.
func LoadCatalog(ctx context.Context, cfg config.Config, m *metrics.Metrics) (*memory.Storage, error) {
	const op = "app.LoadCatalog"

	ds, err := LoadDataset(ctx, cfg)
	if err != nil {
		return nil, err
	}

	st, err := memory.New(ds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.Dataset(string(models.CollectionNews), len(ds.News))
	m.Dataset(string(models.CollectionMedia), len(ds.Media))

	return st, nil
}

// Service - собранный сервис и закрытие внешних клиентов.
type Service struct {
	*service.Service
	closers []func() error
}

// Close закрывает внешние клиенты (Redis).
func (s *Service) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}

	return errors.Join(errs...)
}

// Build собирает сервисный слой: Redis-троттлинг (при throttle_max > 0)
// и MinIO-ссылки подключаются, только если заданы в конфиге.
func Build(ctx context.Context, cfg config.Config, st storage.Storage, m *metrics.Metrics, lg *slog.Logger) (*Service, error) {
	const op = "app.Build"

	out := &Service{}
	opts := []service.Option{service.WithMetrics(m)}

	if cfg.Redis.URL != "" && cfg.Submissions.ThrottleEnabled() {
		th, err := redis.New(ctx, cfg.Redis.URL, cfg.Redis.Prefix, cfg.Submissions.ThrottleMax, cfg.Submissions.ThrottleWindow)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		out.closers = append(out.closers, th.Close)
		opts = append(opts, service.WithThrottle(th))
		lg.Info("throttle_redis_enabled")
	}

	if cfg.S3.Endpoint != "" {
		lk, err := minio.New(ctx, cfg.S3)
		if err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		opts = append(opts, service.WithLinker(lk))
		lg.Info("download_links_enabled", slog.String("bucket", cfg.S3.Bucket))
	}

	svc, err := service.New(st, cfg, opts...)
	if err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.Service = svc

	return out, nil
}
