package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/storage"
)

// contentColumns - единый порядок колонок для SELECT и INSERT.
var contentColumns = []string{
	"collection", "id", "type", "title", "excerpt", "description", "published_on",
	"category", "image_url", "duration", "body", "embed_url", "location",
}

var socialColumns = []string{
	"platform", "id", "handle", "posted", "body", "image_url", "likes", "comments", "shares",
}

func scanRecord(row pgx.Row) (models.ContentRecord, error) {
	var (
		r          models.ContentRecord
		collection string
		typ        string
	)

	err := row.Scan(
		&collection, &r.ID, &typ, &r.Title, &r.Excerpt, &r.Description, &r.Date,
		&r.Category, &r.ImageURL, &r.Duration, &r.Content, &r.EmbedURL, &r.Location,
	)
	if err != nil {
		return models.ContentRecord{}, err
	}

	r.Collection = models.Collection(collection)
	r.Type = models.ContentType(typ)

	return r, nil
}

// Load читает снапшот датасета. Порядок строк не важен: репозиторий сортирует сам.
func (s *Source) Load(ctx context.Context) (*storage.Dataset, error) {
	const op = "storage.postgres.Load"

	ds := &storage.Dataset{}

	if err := s.loadContent(ctx, ds); err != nil {
		return nil, fmt.Errorf("%s: content: %w", op, err)
	}

	if err := s.loadPages(ctx, ds); err != nil {
		return nil, fmt.Errorf("%s: pages: %w", op, err)
	}

	if err := s.loadSocial(ctx, ds); err != nil {
		return nil, fmt.Errorf("%s: social: %w", op, err)
	}

	return ds, nil
}

func (s *Source) loadContent(ctx context.Context, ds *storage.Dataset) error {
	q, args, err := s.sb.Select(contentColumns...).
		From("content").
		OrderBy("collection", "published_on DESC", "id").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return err
		}

		switch r.Collection {
		case models.CollectionNews:
			ds.News = append(ds.News, r)
		case models.CollectionMedia:
			ds.Media = append(ds.Media, r)
		default:
			return fmt.Errorf("%w: unknown collection %q", storage.ErrInvalidDataset, r.Collection)
		}
	}

	return rows.Err()
}

func (s *Source) loadPages(ctx context.Context, ds *storage.Dataset) error {
	q, args, err := s.sb.Select("slug", "title", "description").From("static_pages").OrderBy("slug").ToSql()
	if err != nil {
		return err
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.StaticPage
		if err := rows.Scan(&p.Slug, &p.Title, &p.Description); err != nil {
			return err
		}

		ds.Pages = append(ds.Pages, p)
	}

	return rows.Err()
}

func (s *Source) loadSocial(ctx context.Context, ds *storage.Dataset) error {
	q, args, err := s.sb.Select(socialColumns...).From("social_posts").OrderBy("position").ToSql()
	if err != nil {
		return err
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.SocialPost
		if err := rows.Scan(
			&p.Platform, &p.ID, &p.Handle, &p.Date, &p.Content, &p.ImageURL, &p.Likes, &p.Comments, &p.Shares,
		); err != nil {
			return err
		}

		ds.Social = append(ds.Social, p)
	}

	return rows.Err()
}

// Save заливает датасет одной пачкой с upsert по первичным ключам.
func (s *Source) Save(ctx context.Context, ds *storage.Dataset) error {
	const op = "storage.postgres.Save"

	batch := &pgx.Batch{}

	queue := func(b sq.InsertBuilder) error {
		q, args, err := b.ToSql()
		if err != nil {
			return err
		}

		batch.Queue(q, args...)
		return nil
	}

	upsertContent := "ON CONFLICT (collection, id) DO UPDATE SET " +
		"type = EXCLUDED.type, title = EXCLUDED.title, excerpt = EXCLUDED.excerpt, " +
		"description = EXCLUDED.description, published_on = EXCLUDED.published_on, " +
		"category = EXCLUDED.category, image_url = EXCLUDED.image_url, duration = EXCLUDED.duration, " +
		"body = EXCLUDED.body, embed_url = EXCLUDED.embed_url, location = EXCLUDED.location"

	collections := []struct {
		name    models.Collection
		records []models.ContentRecord
	}{
		{models.CollectionNews, ds.News},
		{models.CollectionMedia, ds.Media},
	}

	for _, coll := range collections {
		for _, r := range coll.records {
			b := s.sb.Insert("content").Columns(contentColumns...).Values(
				string(coll.name), r.ID, string(r.Type), r.Title, r.Excerpt, r.Description, r.Date.UTC(),
				r.Category, r.ImageURL, r.Duration, r.Content, r.EmbedURL, r.Location,
			).Suffix(upsertContent)

			if err := queue(b); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	for _, p := range ds.Pages {
		b := s.sb.Insert("static_pages").Columns("slug", "title", "description").
			Values(p.Slug, p.Title, p.Description).
			Suffix("ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description")

		if err := queue(b); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	for i, p := range ds.Social {
		b := s.sb.Insert("social_posts").Columns(append([]string{"position"}, socialColumns...)...).
			Values(i, p.Platform, p.ID, p.Handle, p.Date, p.Content, p.ImageURL, p.Likes, p.Comments, p.Shares).
			Suffix("ON CONFLICT (platform, id) DO UPDATE SET position = EXCLUDED.position, " +
				"handle = EXCLUDED.handle, posted = EXCLUDED.posted, body = EXCLUDED.body, " +
				"image_url = EXCLUDED.image_url, likes = EXCLUDED.likes, comments = EXCLUDED.comments, shares = EXCLUDED.shares")

		if err := queue(b); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if batch.Len() == 0 {
		return nil
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("%s: batch item %d: %w", op, i, err)
		}
	}

	return nil
}
