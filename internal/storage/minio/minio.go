// minio - временные ссылки на PDF публикаций в MinIO/S3.
// Конструктор нормализует endpoint, подбирает Secure по схеме
// и проверяет наличие бакета (fail-fast).
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pribylovaa/vocal-site/internal/config"
	"github.com/pribylovaa/vocal-site/internal/storage"
)

// Linker - storage.Linker поверх presigned GET.
type Linker struct {
	bucket string
	client *mclient.Client
}

var _ storage.Linker = (*Linker)(nil)

// New создает клиент MinIO и проверяет бакет.
func New(ctx context.Context, cfg config.S3Config) (*Linker, error) {
	const op = "storage.minio.New"

	client, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &Linker{bucket: cfg.Bucket, client: client}, nil
}

func newClient(cfg config.S3Config) (*mclient.Client, error) {
	endpoint := cfg.Endpoint
	secure := cfg.UseSSL

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	endpoint = strings.TrimSuffix(endpoint, "/")

	// Region задан явно: presign не ходит в сеть за bucket location.
	return mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
}

// DownloadURL выдаёт presigned GET на объект с Content-Disposition: attachment.
func (l *Linker) DownloadURL(ctx context.Context, object string, ttl time.Duration) (string, error) {
	const op = "storage.minio.DownloadURL"

	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", object))

	u, err := l.client.PresignedGetObject(ctx, l.bucket, object, ttl, params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return u.String(), nil
}
