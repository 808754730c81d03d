// mongo - источник датасета на MongoDB.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pribylovaa/vocal-site/internal/storage"
)

const (
	contentCollection = "content"
	pagesCollection   = "pages"
	socialCollection  = "social"
	defaultDBName     = "vocal"
)

// Source - storage.Source поверх MongoDB.
type Source struct {
	client  *mongodriver.Client
	db      *mongodriver.Database
	content *mongodriver.Collection
	pages   *mongodriver.Collection
	social  *mongodriver.Collection
}

var _ storage.Source = (*Source)(nil)

// New подключается к MongoDB, проверяет соединение и готовит индексы.
// Имя БД берётся из пути URI.
func New(ctx context.Context, uri string) (*Source, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w: %w", storage.ErrUnavailable, err)
	}

	db := cli.Database(databaseFromURI(uri))

	s := &Source{
		client:  cli,
		db:      db,
		content: db.Collection(contentCollection),
		pages:   db.Collection(pagesCollection),
		social:  db.Collection(socialCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

func (s *Source) Close() error {
	return s.client.Disconnect(context.Background())
}

// ensureIndexes - ключи уникальности датасета:
// (collection, id) для контента, slug для страниц, (platform, id) для постов.
func (s *Source) ensureIndexes(ctx context.Context) error {
	unique := func(name string) *options.IndexOptions {
		return options.Index().SetName(name).SetUnique(true)
	}

	if _, err := s.content.Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "id", Value: 1}}, Options: unique("collection_id")},
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "date", Value: -1}}, Options: options.Index().SetName("collection_date_desc")},
	}); err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}

	if _, err := s.pages.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique("slug"),
	}); err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}

	if _, err := s.social.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys: bson.D{{Key: "platform", Value: 1}, {Key: "id", Value: 1}}, Options: unique("platform_id"),
	}); err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
