package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/vocal-site/internal/catalog"
	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/pkg/log"
	"github.com/pribylovaa/vocal-site/internal/storage"
)

// HomeTeasers - сколько тизеров показывает вкладка главной.
const HomeTeasers = 4

// Платформы social hub в порядке вкладок.
var Platforms = []string{"twitter", "instagram", "linkedin", "facebook"}

type homeTab struct {
	key string
	typ models.ContentType
}

var (
	newsTabs = []homeTab{
		{"all", ""},
		{"articles", models.TypeArticle},
		{"press", models.TypePressStatement},
		{"reports", models.TypeReport},
		{"publications", models.TypePublication},
	}
	mediaTabs = []homeTab{
		{"all", ""},
		{"podcasts", models.TypePodcast},
		{"videos", models.TypeYouTube},
	}
)

// Page возвращает статичную страницу по slug.
//
// Ошибки:
//   - ErrNotFound - страницы нет (маппинг storage.ErrNotFound);
//   - прочие ошибки стораджа - обёрнутые и прокинуты наверх.
func (s *Service) Page(ctx context.Context, slug string) (*models.StaticPage, error) {
	const op = "service.pages.Page"

	lg := log.From(ctx)

	p, err := s.storage.PageBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("page_not_found",
				slog.String("op", op),
				slog.String("slug", slug),
			)

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("page_storage_error",
			slog.String("op", op),
			slog.String("slug", slug),
			log.Err(err),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// Home собирает вкладки тизеров главной: первые HomeTeasers записей каждой вкладки.
// Медийная вкладка "all" не показывает фото.
func (s *Service) Home(ctx context.Context) (*models.Home, error) {
	const op = "service.pages.Home"

	news, err := s.storage.News(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	media, err := s.storage.Media(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	home := &models.Home{
		News:  make([]models.HomeTab, 0, len(newsTabs)),
		Media: make([]models.HomeTab, 0, len(mediaTabs)),
	}

	for _, t := range newsTabs {
		home.News = append(home.News, models.HomeTab{Key: t.key, Items: teasers(news, t.typ, false)})
	}

	for _, t := range mediaTabs {
		home.Media = append(home.Media, models.HomeTab{Key: t.key, Items: teasers(media, t.typ, true)})
	}

	log.From(ctx).Debug("home_ok", slog.String("op", op))

	return home, nil
}

func teasers(records []models.ContentRecord, t models.ContentType, skipPhotos bool) []models.ContentRecord {
	out := make([]models.ContentRecord, 0, HomeTeasers)

	for _, r := range catalog.ByType(records, string(t)) {
		if len(out) == HomeTeasers {
			break
		}

		if skipPhotos && t == "" && r.Type == models.TypePhoto {
			continue
		}

		out = append(out, r)
	}

	return out
}

// Social возвращает ленты соцсетей. Пустая платформа или "all" - все ленты
// в порядке Platforms; неизвестная платформа - ErrInvalidArgument.
func (s *Service) Social(ctx context.Context, platform string) ([]models.SocialFeed, error) {
	const op = "service.pages.Social"

	selected := Platforms
	if platform != "" && platform != models.All {
		known := false
		for _, p := range Platforms {
			if p == platform {
				known = true
				break
			}
		}

		if !known {
			return nil, fmt.Errorf("%s: platform %q: %w", op, platform, ErrInvalidArgument)
		}

		selected = []string{platform}
	}

	posts, err := s.storage.SocialPosts(ctx)
	if err != nil {
		log.From(ctx).Error("social_storage_error",
			slog.String("op", op),
			log.Err(err),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	feeds := make([]models.SocialFeed, 0, len(selected))
	for _, p := range selected {
		feed := models.SocialFeed{Platform: p, Posts: make([]models.SocialPost, 0)}
		for _, post := range posts {
			if post.Platform == p {
				feed.Posts = append(feed.Posts, post)
			}
		}

		feeds = append(feeds, feed)
	}

	return feeds, nil
}

// NewsFeed возвращает новости для RSS: весь поток в порядке убывания даты.
func (s *Service) NewsFeed(ctx context.Context) ([]models.ContentRecord, error) {
	const op = "service.pages.NewsFeed"

	news, err := s.storage.News(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return news, nil
}
