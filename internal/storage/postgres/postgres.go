// postgres - источник датасета на PostgreSQL.
//
// Таблицы читаются целиком один раз при старте (снапшот), дальше сайт
// работает с репозиторием в памяти. Save нужен только для заливки датасета.
package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pribylovaa/vocal-site/internal/storage"
)

// pool - подмножество pgxpool.Pool, которое нам нужно (подменяется pgxmock в тестах).
type pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Close()
}

// Source - storage.Source поверх PostgreSQL.
type Source struct {
	db pool
	sb sq.StatementBuilderType
}

var _ storage.Source = (*Source)(nil)

// New создает и инициализирует пул соединений к PostgreSQL.
func New(ctx context.Context, dbURL string) (*Source, error) {
	const op = "storage.postgres.New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}

	return newWithPool(db), nil
}

func newWithPool(db pool) *Source {
	return &Source{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Close закрывает пул соединений.
func (s *Source) Close() error {
	s.db.Close()
	return nil
}
