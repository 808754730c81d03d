package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/vocal-site/internal/catalog"
	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/pkg/log"
)

// Ключи листингов.
const (
	ListingNewsroom        = "newsroom"
	ListingArticles        = "articles"
	ListingPressStatements = "press-statements"
	ListingReports         = "reports"
	ListingPublications    = "publications"
	ListingVideos          = "videos"
	ListingPodcasts        = "podcasts"
	ListingGallery         = "gallery"
)

// Listing - описание листинга с фиксированным предикатом.
type Listing struct {
	Key         string
	Title       string
	Badge       string
	Description string
	Collection  models.Collection
	// Type - зафиксированный подтип; пусто - выбирает пользователь (newsroom).
	Type models.ContentType
	// Category - если задана, подменяет категорию элементов листинга.
	Category string
}

var listings = []Listing{
	{
		Key:         ListingNewsroom,
		Title:       "News & Publications",
		Badge:       "Newsroom",
		Description: "Browse all our latest updates, articles, press statements, reports, and publications in one place.",
		Collection:  models.CollectionNews,
	},
	{
		Key:         ListingArticles,
		Title:       "All Articles",
		Badge:       "Articles",
		Description: "In-depth analysis, stories, and feature pieces exploring the intersection of community leadership and social justice across Africa.",
		Collection:  models.CollectionNews,
		Type:        models.TypeArticle,
	},
	{
		Key:         ListingPressStatements,
		Title:       "Press Statements",
		Badge:       "Press Statements",
		Description: "Official announcements, media briefings, and VOCAL Africa's position on current events and systemic issues.",
		Collection:  models.CollectionNews,
		Type:        models.TypePressStatement,
	},
	{
		Key:         ListingReports,
		Title:       "Impact Reports",
		Badge:       "Reports",
		Description: "Transparency is core to our mission. Explore our annual findings, financial statements, and thematic impact assessments.",
		Collection:  models.CollectionNews,
		Type:        models.TypeReport,
	},
	{
		Key:         ListingPublications,
		Title:       "Publications",
		Badge:       "Publications",
		Description: "Strategic guides, research papers, and educational materials designed to empower activists and inform policy makers.",
		Collection:  models.CollectionNews,
		Type:        models.TypePublication,
	},
	{
		Key:         ListingVideos,
		Title:       "Videos & Documentaries",
		Badge:       "Videos",
		Description: "Watch the stories of change-makers, documentary shorts, and highlights from our summits and workshops.",
		Collection:  models.CollectionMedia,
		Type:        models.TypeYouTube,
		Category:    "Video",
	},
	{
		Key:         ListingPodcasts,
		Title:       "VOCAL Podcasts",
		Badge:       "Podcasts",
		Description: "Listen to conversations with African leaders, activists, and thinkers shaping the future of the continent.",
		Collection:  models.CollectionMedia,
		Type:        models.TypePodcast,
		Category:    "Podcast",
	},
	{
		Key:         ListingGallery,
		Title:       "Photo Gallery",
		Badge:       "Gallery",
		Description: "Capturing the heartbeat of advocacy across the continent.",
		Collection:  models.CollectionMedia,
		Type:        models.TypePhoto,
	},
}

// Listings возвращает описания всех листингов в порядке навигации.
func Listings() []Listing {
	out := make([]Listing, len(listings))
	copy(out, listings)

	return out
}

func listingByKey(key string) (Listing, bool) {
	for _, l := range listings {
		if l.Key == key {
			return l, true
		}
	}

	return Listing{}, false
}

// Newsroom - сводный листинг новостей с выбором подтипа.
func (s *Service) Newsroom(ctx context.Context, f models.FilterState) (*models.ListingPage, error) {
	return s.Listing(ctx, ListingNewsroom, f)
}

// Listing прогоняет конвейер фильтр -> фасеты -> пагинатор для листинга key.
//
// Особенности:
//   - у листингов с фиксированным подтипом f.Type игнорируется;
//   - темы в фасете считаются по коллекции, отфильтрованной только по подтипу;
//   - страница вне диапазона приводится в диапазон, а не даёт ошибку.
//
// Ошибки:
//   - ErrNotFound - неизвестный листинг;
//   - ErrInvalidArgument - отрицательная страница;
//   - прочие ошибки стораджа - обёрнутые и прокинуты наверх.
func (s *Service) Listing(ctx context.Context, key string, f models.FilterState) (*models.ListingPage, error) {
	const op = "service.listings.Listing"

	lg := log.From(ctx)

	def, ok := listingByKey(key)
	if !ok {
		lg.Warn("listing_not_found",
			slog.String("op", op),
			slog.String("listing", key),
		)

		return nil, fmt.Errorf("%s: listing %q: %w", op, key, ErrNotFound)
	}

	if f.Page < 0 {
		return nil, fmt.Errorf("%s: page %d: %w", op, f.Page, ErrInvalidArgument)
	}

	f = f.Normalize()
	if def.Type != "" {
		f.Type = string(def.Type)
	}

	lg.Debug("listing_request",
		slog.String("op", op),
		slog.String("listing", key),
		slog.String("type", f.Type),
		slog.String("topic", f.Topic),
		slog.Bool("has_query", f.Query != ""),
		slog.Int("page", f.Page),
	)

	records, err := s.collection(ctx, def.Collection)
	if err != nil {
		lg.Error("listing_storage_error",
			slog.String("op", op),
			log.Err(err),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if def.Type != "" {
		records = catalog.ByType(records, string(def.Type))
	}

	if def.Category != "" {
		for i := range records {
			records[i].Category = def.Category
		}
	}

	matched := catalog.Apply(records, f)
	items, p := catalog.Paginate(matched, f.Page, s.cfg.Catalog.PageSize)
	f.Page = p.Page

	s.metrics.Listing(key, len(matched))

	lg.Info("listing_ok",
		slog.String("op", op),
		slog.String("listing", key),
		slog.Int("matched", len(matched)),
		slog.Int("page", p.Page),
		slog.Int("total_pages", p.TotalPages),
	)

	return &models.ListingPage{
		Listing:     def.Key,
		Title:       def.Title,
		Badge:       def.Badge,
		Description: def.Description,
		Filter:      f,
		Facets:      catalog.FacetsFor(records, f.Type),
		Items:       items,
		Pagination:  p,
	}, nil
}

// collection возвращает копию коллекции из стораджа.
func (s *Service) collection(ctx context.Context, c models.Collection) ([]models.ContentRecord, error) {
	if c == models.CollectionMedia {
		return s.storage.Media(ctx)
	}

	return s.storage.News(ctx)
}
