package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/vocal-site/internal/storage/memory"
	"github.com/pribylovaa/vocal-site/internal/storage/seed"
)

// Интеграционные тесты: реальный PostgreSQL (postgres:16-alpine) через testcontainers-go,
// миграции из ./migrations, заливка встроенного датасета и чтение снапшота.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile - корень репозитория относительно текущего файла тестов.
func repoRootFromThisFile() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(repoRootFromThisFile(), "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

func startPostgres(t *testing.T) *Source {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, readMigration(t, "1_init_content.up.sql"))
	require.NoError(t, err)

	src, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	return src
}

func TestIntegration_SaveThenLoad_RoundTrip(t *testing.T) {
	src := startPostgres(t)
	ctx := context.Background()

	want, err := seed.Embedded().Load(ctx)
	require.NoError(t, err)

	require.NoError(t, src.Save(ctx, want))
	// повторная заливка - upsert без дублей
	require.NoError(t, src.Save(ctx, want))

	got, err := src.Load(ctx)
	require.NoError(t, err)

	require.Len(t, got.News, len(want.News))
	require.Len(t, got.Media, len(want.Media))
	require.Len(t, got.Pages, len(want.Pages))
	require.Len(t, got.Social, len(want.Social))
	require.Equal(t, want.Social[0].Content, got.Social[0].Content, "social order is kept")

	repo, err := memory.New(got)
	require.NoError(t, err)

	news, err := repo.News(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, news[0].ID)
	require.Equal(t, time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC), news[0].Date.UTC())
}

func TestIntegration_Load_ContextDeadlineExceeded(t *testing.T) {
	src := startPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := src.Load(ctx)
	require.Error(t, err)
}
