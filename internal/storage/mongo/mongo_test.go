package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/storage/memory"
	"github.com/pribylovaa/vocal-site/internal/storage/seed"
)

const testTimeout = 30 * time.Second

// mongoURI - адрес контейнера без имени БД; пусто, если интеграция выключена.
var mongoURI string

// TestMain поднимает MongoDB в контейнере один раз на пакет.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7.0",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, _ := mongoC.Host(ctx)
	port, _ := mongoC.MappedPort(ctx, "27017/tcp")
	mongoURI = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

func TestDatabaseFromURI(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/site", "site"},
		{"mongodb://user:pass@h1,h2/site?replicaSet=rs0", "site"},
		{"mongodb://localhost:27017", defaultDBName},
		{"mongodb://localhost:27017/", defaultDBName},
		{"::bad", defaultDBName},
	}

	for _, tc := range tcs {
		t.Run(tc.uri, func(t *testing.T) {
			require.Equal(t, tc.want, databaseFromURI(tc.uri))
		})
	}
}

func TestContentDoc_RoundTrip(t *testing.T) {
	t.Parallel()

	r := models.ContentRecord{
		ID:          5,
		Title:       "Legal Advocacy",
		Description: "d",
		Date:        time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC),
		Type:        models.TypePodcast,
		Duration:    "35 min",
		EmbedURL:    "https://open.spotify.com/embed/episode/x",
	}

	got := toContentDoc(models.CollectionMedia, r).record()

	r.Collection = models.CollectionMedia
	require.Equal(t, r, got)
}

func TestIntegration_SaveThenLoad(t *testing.T) {
	if mongoURI == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	// отдельная БД на тест
	src, err := New(ctx, mongoURI+"/t_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	want, err := seed.Embedded().Load(ctx)
	require.NoError(t, err)

	require.NoError(t, src.Save(ctx, want))
	require.NoError(t, src.Save(ctx, want), "save is idempotent")

	got, err := src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.News, len(want.News))
	require.Len(t, got.Media, len(want.Media))
	require.Len(t, got.Pages, len(want.Pages))
	require.Len(t, got.Social, len(want.Social))
	require.Equal(t, want.Social[len(want.Social)-1].Platform, got.Social[len(got.Social)-1].Platform)

	_, err = memory.New(got)
	require.NoError(t, err)
}
