package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/storage"
)

// Load читает снапшот датасета из трёх коллекций.
func (s *Source) Load(ctx context.Context) (*storage.Dataset, error) {
	const op = "storage.mongo.Load"

	ds := &storage.Dataset{}

	var content []contentDoc
	if err := findAll(ctx, s.content, bson.D{{Key: "collection", Value: 1}, {Key: "date", Value: -1}}, &content); err != nil {
		return nil, fmt.Errorf("%s: content: %w", op, err)
	}

	for _, d := range content {
		switch r := d.record(); r.Collection {
		case models.CollectionNews:
			ds.News = append(ds.News, r)
		case models.CollectionMedia:
			ds.Media = append(ds.Media, r)
		default:
			return nil, fmt.Errorf("%s: %w: unknown collection %q", op, storage.ErrInvalidDataset, d.Collection)
		}
	}

	var pages []pageDoc
	if err := findAll(ctx, s.pages, bson.D{{Key: "slug", Value: 1}}, &pages); err != nil {
		return nil, fmt.Errorf("%s: pages: %w", op, err)
	}

	for _, p := range pages {
		ds.Pages = append(ds.Pages, models.StaticPage{Slug: p.Slug, Title: p.Title, Description: p.Description})
	}

	var social []socialDoc
	if err := findAll(ctx, s.social, bson.D{{Key: "position", Value: 1}}, &social); err != nil {
		return nil, fmt.Errorf("%s: social: %w", op, err)
	}

	for _, p := range social {
		ds.Social = append(ds.Social, p.post())
	}

	return ds, nil
}

func findAll[T any](ctx context.Context, c *mongodriver.Collection, sort bson.D, out *[]T) error {
	cur, err := c.Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	return cur.All(ctx, out)
}

// Save заливает датасет: replace с upsert по ключам уникальности.
func (s *Source) Save(ctx context.Context, ds *storage.Dataset) error {
	const op = "storage.mongo.Save"

	var content []mongodriver.WriteModel
	for _, coll := range []struct {
		name    models.Collection
		records []models.ContentRecord
	}{
		{models.CollectionNews, ds.News},
		{models.CollectionMedia, ds.Media},
	} {
		for _, r := range coll.records {
			content = append(content, mongodriver.NewReplaceOneModel().
				SetFilter(bson.D{{Key: "collection", Value: string(coll.name)}, {Key: "id", Value: r.ID}}).
				SetReplacement(toContentDoc(coll.name, r)).
				SetUpsert(true))
		}
	}

	var pages []mongodriver.WriteModel
	for _, p := range ds.Pages {
		pages = append(pages, mongodriver.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "slug", Value: p.Slug}}).
			SetReplacement(pageDoc{Slug: p.Slug, Title: p.Title, Description: p.Description}).
			SetUpsert(true))
	}

	var social []mongodriver.WriteModel
	for i, p := range ds.Social {
		social = append(social, mongodriver.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "platform", Value: p.Platform}, {Key: "id", Value: p.ID}}).
			SetReplacement(toSocialDoc(i, p)).
			SetUpsert(true))
	}

	for _, w := range []struct {
		c      *mongodriver.Collection
		models []mongodriver.WriteModel
	}{
		{s.content, content},
		{s.pages, pages},
		{s.social, social},
	} {
		if len(w.models) == 0 {
			continue
		}

		if _, err := w.c.BulkWrite(ctx, w.models, options.BulkWrite().SetOrdered(false)); err != nil {
			return fmt.Errorf("%s: %s: %w", op, w.c.Name(), err)
		}
	}

	return nil
}
