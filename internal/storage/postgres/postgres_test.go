package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/storage"
)

// Unit-тесты Load на pgxmock: разбор строк по коллекциям, ошибки запросов.
// Реальный PostgreSQL - в integration_test.go.

func contentRows() *pgxmock.Rows {
	d := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	return pgxmock.NewRows(contentColumns).
		AddRow("media", 2, "YouTube", "Clip", "", "desc", d, "", "img", "28 min", "", "https://embed", "").
		AddRow("news", 3, "Report", "Annual", "ex", "", d, "Reports", "img", "", "<h2>A</h2>", "", "")
}

func TestLoad_SplitsCollections(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src := newWithPool(mock)

	mock.ExpectQuery("FROM content").WillReturnRows(contentRows())
	mock.ExpectQuery("FROM static_pages").
		WillReturnRows(pgxmock.NewRows([]string{"slug", "title", "description"}).AddRow("about", "About", "d"))
	mock.ExpectQuery("FROM social_posts").
		WillReturnRows(pgxmock.NewRows(socialColumns).AddRow("twitter", 1, "@vocalafrica", "2h ago", "hi", "", "1.2k", "89", "450"))

	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.News, 1)
	require.Equal(t, models.TypeReport, ds.News[0].Type)
	require.Equal(t, models.CollectionNews, ds.News[0].Collection)
	require.Equal(t, "<h2>A</h2>", ds.News[0].Content)

	require.Len(t, ds.Media, 1)
	require.Equal(t, "https://embed", ds.Media[0].EmbedURL)

	require.Equal(t, []models.StaticPage{{Slug: "about", Title: "About", Description: "d"}}, ds.Pages)
	require.Len(t, ds.Social, 1)
	require.Equal(t, "1.2k", ds.Social[0].Likes)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_UnknownCollection(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM content").WillReturnRows(
		pgxmock.NewRows(contentColumns).
			AddRow("blog", 1, "Article", "T", "e", "", time.Now(), "", "", "", "", "", ""),
	)

	_, err = newWithPool(mock).Load(context.Background())
	require.ErrorIs(t, err, storage.ErrInvalidDataset)
}

func TestLoad_QueryError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("FROM content").WillReturnRows(contentRows())
	mock.ExpectQuery("FROM static_pages").WillReturnError(boom)

	_, err = newWithPool(mock).Load(context.Background())
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "storage.postgres.Load: pages")
}
