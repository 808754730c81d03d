// storage определяет контракты доступа к данным сайта.
//
// Датасет читается один раз при старте (Source) и дальше живёт
// неизменяемым репозиторием в памяти (Storage). Остальные контракты -
// вспомогательные хранилища для форм и выгрузок.
package storage

//go:generate mockgen -source=storage.go -destination=../../mocks/storage.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/vocal-site/internal/models"
)

var (
	// ErrNotFound - сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDataset - датасет нарушает инварианты (дубль id, неизвестный тип ...).
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrUnavailable - внешнее хранилище недоступно.
	ErrUnavailable = errors.New("storage unavailable")
)

// Dataset - снапшот всего контента сайта.
type Dataset struct {
	News   []models.ContentRecord
	Media  []models.ContentRecord
	Pages  []models.StaticPage
	Social []models.SocialPost
}

// Source - источник снапшота датасета (встроенный YAML, файл, Postgres, MongoDB).
type Source interface {
	// Load читает снапшот целиком.
	Load(ctx context.Context) (*Dataset, error)
	Close() error
}

// Storage - неизменяемый репозиторий контента.
// Возвращаемые срезы отсортированы по убыванию даты и принадлежат вызывающему.
type Storage interface {
	News(ctx context.Context) ([]models.ContentRecord, error)
	Media(ctx context.Context) ([]models.ContentRecord, error)
	// PageBySlug возвращает статичную страницу; нет такой - ErrNotFound.
	PageBySlug(ctx context.Context, slug string) (*models.StaticPage, error)
	SocialPosts(ctx context.Context) ([]models.SocialPost, error)
}

// Throttle - счётчик заявок с фиксированным окном.
type Throttle interface {
	// Allow увеличивает счётчик key и сообщает, укладывается ли он в лимит окна.
	Allow(ctx context.Context, key string) (bool, error)
}

// Linker выдаёт временные ссылки на файлы публикаций.
type Linker interface {
	DownloadURL(ctx context.Context, object string, ttl time.Duration) (string, error)
}
