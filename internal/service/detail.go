package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pribylovaa/vocal-site/internal/catalog"
	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/pkg/log"
)

// RelatedLimit - сколько связанных материалов показывает страница чтения.
const RelatedLimit = 3

// MediaSharePrefix - префикс заголовка при шаринге медиа.
const MediaSharePrefix = "VOCAL Africa Media: "

var whitespaceRun = regexp.MustCompile(`\s+`)

// Detail разрешает /content/{token}/{id} и собирает данные детальной страницы.
//
// Особенности:
//   - поиск идёт по news, затем по media; совпадение по подтипу важнее категории;
//   - Readable - очищенный HTML, оглавление, время чтения и до RelatedLimit
//     материалов той же категории из той же коллекции;
//   - Playable - ссылка плеера, длительность и заголовок для шаринга.
//
// Ошибки:
//   - ErrInvalidArgument - id <= 0;
//   - ErrNotFound - материала нет (страница 404 со ссылкой на главную).
func (s *Service) Detail(ctx context.Context, token string, id int) (*models.Detail, error) {
	const op = "service.detail.Detail"

	lg := log.From(ctx)

	rec, news, media, err := s.resolve(ctx, op, token, id)
	if err != nil {
		s.metrics.Detail("unknown", outcome(err))
		return nil, err
	}

	d := &models.Detail{
		Record:        rec,
		Capability:    rec.Type.Capability(),
		CategoryTitle: categoryTitle(token),
		Related:       make([]models.ContentRecord, 0),
	}

	switch d.Capability {
	case models.Readable:
		view, err := s.reader.Render(rec)
		if err != nil {
			lg.Error("detail_render_failed",
				slog.String("op", op),
				slog.Int("id", id),
				log.Err(err),
			)

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		d.Reading = &view

		pool := news
		if rec.Collection == models.CollectionMedia {
			pool = media
		}
		d.Related = catalog.Related(pool, rec, RelatedLimit)
	case models.Playable:
		d.Playback = &models.PlaybackView{
			EmbedURL:   rec.EmbedURL,
			Duration:   rec.Duration,
			ShareTitle: MediaSharePrefix + rec.Title,
		}
	default:
		// Неизвестный подтип отсекается при загрузке датасета.
		return nil, fmt.Errorf("%s: unsupported type %q", op, rec.Type)
	}

	s.metrics.Detail(d.Capability.String(), "ok")

	lg.Info("detail_ok",
		slog.String("op", op),
		slog.String("type", string(rec.Type)),
		slog.Int("id", id),
		slog.String("capability", d.Capability.String()),
	)

	return d, nil
}

// Share возвращает данные для системного "поделиться" на клиенте.
// Ссылка абсолютная: <site.base_url>/content/<type>/<id>.
func (s *Service) Share(ctx context.Context, token string, id int) (*models.SharePayload, error) {
	const op = "service.detail.Share"

	rec, _, _, err := s.resolve(ctx, op, token, id)
	if err != nil {
		return nil, err
	}

	link, err := s.ContentURL(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p := &models.SharePayload{Title: rec.Title, Text: rec.Summary(), URL: link}
	if rec.Type.Capability() == models.Playable {
		p.Title = MediaSharePrefix + rec.Title
		p.Text = rec.Description
		if p.Text == "" {
			p.Text = rec.Excerpt
		}
	}

	return p, nil
}

// ContentURL - абсолютная ссылка на детальную страницу материала.
func (s *Service) ContentURL(rec models.ContentRecord) (string, error) {
	return url.JoinPath(s.cfg.Site.BaseURL, "content", string(rec.Type), strconv.Itoa(rec.ID))
}

// Download имитирует подготовку PDF: ждёт submissions.download_delay и отдаёт
// имя файла, сообщение и ссылку (presigned, если хранилище файлов настроено, иначе "#").
//
// Ошибки:
//   - ErrNotFound / ErrInvalidArgument - как у Detail;
//   - ErrInvalidArgument - у материала нет текста для выгрузки (Playable);
//   - ctx.Err() - клиент ушёл, не дождавшись.
func (s *Service) Download(ctx context.Context, token string, id int) (*models.Download, error) {
	const op = "service.detail.Download"

	lg := log.From(ctx)

	rec, _, _, err := s.resolve(ctx, op, token, id)
	if err != nil {
		return nil, err
	}

	if rec.Type.Capability() != models.Readable {
		return nil, fmt.Errorf("%s: %s is not downloadable: %w", op, rec.Type, ErrInvalidArgument)
	}

	if err := s.sleep(ctx, s.cfg.Submissions.DownloadDelay); err != nil {
		lg.Warn("download_canceled",
			slog.String("op", op),
			slog.Int("id", id),
			log.Err(err),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	name := FileName(rec.Title)

	link := "#"
	if s.linker != nil {
		u, err := s.linker.DownloadURL(ctx, name, s.cfg.S3.PresignTTL)
		if err != nil {
			// Ссылка не критична: клиент получит "#", как без хранилища.
			lg.Warn("download_presign_failed",
				slog.String("op", op),
				slog.String("object", name),
				log.Err(err),
			)
		} else {
			link = u
		}
	}

	typ := string(rec.Type)
	if typ == "" {
		typ = string(models.TypePublication)
	}

	s.metrics.Download()

	lg.Info("download_ok",
		slog.String("op", op),
		slog.Int("id", id),
		slog.String("file", name),
	)

	return &models.Download{
		FileName: name,
		URL:      link,
		Message:  typ + " has been downloaded successfully.",
	}, nil
}

// FileName - имя PDF: заголовок в нижнем регистре, пробельные серии заменены на "-".
func FileName(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(title), "-") + ".pdf"
}

// resolve - общий вход Detail/Share/Download: валидация id и поиск записи.
func (s *Service) resolve(ctx context.Context, op, token string, id int) (models.ContentRecord, []models.ContentRecord, []models.ContentRecord, error) {
	lg := log.From(ctx)

	if id <= 0 || token == "" {
		return models.ContentRecord{}, nil, nil, fmt.Errorf("%s: id %d: %w", op, id, ErrInvalidArgument)
	}

	news, err := s.storage.News(ctx)
	if err != nil {
		return models.ContentRecord{}, nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	media, err := s.storage.Media(ctx)
	if err != nil {
		return models.ContentRecord{}, nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := catalog.Resolve(token, id, news, media)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			lg.Warn("content_not_found",
				slog.String("op", op),
				slog.String("type", token),
				slog.Int("id", id),
			)

			return models.ContentRecord{}, nil, nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return models.ContentRecord{}, nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return rec, news, media, nil
}

// categoryTitle - токен пути с заглавной первой буквой; остальное не трогаем ("YouTube").
func categoryTitle(token string) string {
	r, size := utf8.DecodeRuneInString(token)
	if r == utf8.RuneError {
		return token
	}

	return string(unicode.ToTitle(r)) + token[size:]
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid"
	default:
		return "error"
	}
}
