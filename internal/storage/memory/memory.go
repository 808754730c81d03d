// memory - неизменяемый репозиторий контента в памяти.
//
// Строится один раз из снапшота: проверка инвариантов, стабильная сортировка
// по убыванию даты. После New данные не меняются, поэтому чтение без блокировок.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/storage"
)

// Storage - реализация storage.Storage поверх снапшота.
type Storage struct {
	news   []models.ContentRecord
	media  []models.ContentRecord
	pages  map[string]models.StaticPage
	social []models.SocialPost
}

var _ storage.Storage = (*Storage)(nil)

// New проверяет снапшот и строит репозиторий.
// Нарушение инвариантов - ошибка с storage.ErrInvalidDataset.
func New(ds *storage.Dataset) (*Storage, error) {
	const op = "storage.memory.New"

	if ds == nil {
		return nil, fmt.Errorf("%s: %w: nil dataset", op, storage.ErrInvalidDataset)
	}

	news, err := prepare(ds.News, models.CollectionNews)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	media, err := prepare(ds.Media, models.CollectionMedia)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pages := make(map[string]models.StaticPage, len(ds.Pages))
	for _, p := range ds.Pages {
		if p.Slug == "" {
			return nil, fmt.Errorf("%s: %w: page without slug", op, storage.ErrInvalidDataset)
		}

		if _, dup := pages[p.Slug]; dup {
			return nil, fmt.Errorf("%s: %w: duplicate page %q", op, storage.ErrInvalidDataset, p.Slug)
		}

		pages[p.Slug] = p
	}

	return &Storage{
		news:   news,
		media:  media,
		pages:  pages,
		social: slices.Clone(ds.Social),
	}, nil
}

// prepare копирует коллекцию, проверяет записи и сортирует по убыванию даты.
func prepare(in []models.ContentRecord, c models.Collection) ([]models.ContentRecord, error) {
	out := make([]models.ContentRecord, len(in))
	seen := make(map[int]struct{}, len(in))

	var errs []error
	for i, r := range in {
		r.Collection = c

		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
		}

		if _, dup := seen[r.ID]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate id %d", c, r.ID))
		}
		seen[r.ID] = struct{}{}

		out[i] = r
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidDataset, errors.Join(errs...))
	}

	slices.SortStableFunc(out, func(a, b models.ContentRecord) int {
		return cmp.Compare(b.Date.Unix(), a.Date.Unix())
	})

	return out, nil
}

// News возвращает копию коллекции новостей.
func (s *Storage) News(_ context.Context) ([]models.ContentRecord, error) {
	return slices.Clone(s.news), nil
}

// Media возвращает копию медиаколлекции.
func (s *Storage) Media(_ context.Context) ([]models.ContentRecord, error) {
	return slices.Clone(s.media), nil
}

func (s *Storage) PageBySlug(_ context.Context, slug string) (*models.StaticPage, error) {
	p, ok := s.pages[slug]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &p, nil
}

func (s *Storage) SocialPosts(_ context.Context) ([]models.SocialPost, error) {
	return slices.Clone(s.social), nil
}
