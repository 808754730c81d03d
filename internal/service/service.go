// service содержит бизнес-логику сайта: листинги, детальные страницы,
// главная, соцсети и симуляция форм.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pribylovaa/vocal-site/internal/config"
	"github.com/pribylovaa/vocal-site/internal/metrics"
	"github.com/pribylovaa/vocal-site/internal/reading"
	"github.com/pribylovaa/vocal-site/internal/storage"
	"github.com/pribylovaa/vocal-site/internal/storage/memory"
)

var (
	// ErrNotFound - страница, листинг или материал отсутствуют.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument - некорректные входные аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRateLimited - слишком много заявок с одного email.
	// Транспорт: 429.
	ErrRateLimited = errors.New("rate limited")
)

// Service - бизнес-логика сайта поверх неизменяемого репозитория.
type Service struct {
	storage  storage.Storage
	throttle storage.Throttle
	linker   storage.Linker
	reader   *reading.Renderer
	metrics  *metrics.Metrics
	validate *validator.Validate
	cfg      config.Config

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	newID func() uuid.UUID
}

// Option настраивает необязательные зависимости Service.
type Option func(*Service)

// WithThrottle подменяет счётчик заявок. Без него счётчик в памяти создаётся,
// только если submissions.throttle_max > 0.
func WithThrottle(t storage.Throttle) Option {
	return func(s *Service) { s.throttle = t }
}

// WithLinker включает выдачу ссылок на файлы публикаций.
func WithLinker(l storage.Linker) Option {
	return func(s *Service) { s.linker = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New создает новый экземпляр Service.
func New(st storage.Storage, cfg config.Config, opts ...Option) (*Service, error) {
	const op = "service.New"

	reader, err := reading.New(0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.Catalog.PageSize <= 0 {
		cfg.Catalog.PageSize = 12
	}

	s := &Service{
		storage:  st,
		reader:   reader,
		validate: newValidator(),
		cfg:      cfg,
		now:      time.Now,
		sleep:    sleepCtx,
		newID:    uuid.New,
	}

	for _, o := range opts {
		o(s)
	}

	if s.throttle == nil && cfg.Submissions.ThrottleEnabled() {
		s.throttle = memory.NewThrottle(cfg.Submissions.ThrottleMax, max(cfg.Submissions.ThrottleWindow, time.Second))
	}

	return s, nil
}

// sleepCtx ждёт d; раньше времени выходит только по окончании ctx.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
