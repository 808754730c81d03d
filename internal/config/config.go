// config предоставляет структуру конфигурации сайта
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Источники датасета.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceMongo    = "mongo"
)

// Config - корневая конфигурация.
type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	HTTP        HTTPConfig        `yaml:"http"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Timeouts    TimeoutConfig     `yaml:"timeouts"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	DB          DBConfig          `yaml:"db"`
	Mongo       MongoConfig       `yaml:"mongo"`
	Redis       RedisConfig       `yaml:"redis"`
	S3          S3Config          `yaml:"s3"`
	Submissions SubmissionsConfig `yaml:"submissions"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Site        SiteConfig        `yaml:"site"`
}

// TimeoutConfig - таймаут обработки запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
}

// HTTPConfig - публичный HTTP-сервер.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	// TrustProxy - доверять X-Forwarded-For/X-Real-IP (сайт за балансировщиком).
	TrustProxy bool `yaml:"trust_proxy" env:"HTTP_TRUST_PROXY" env-default:"false"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig - отдельный HTTP для Prometheus.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"9090"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// CatalogConfig - откуда грузить датасет и как резать страницы.
type CatalogConfig struct {
	// embedded | file | postgres | mongo
	Source string `yaml:"source" env:"CATALOG_SOURCE" env-default:"embedded"`
	// Путь к YAML для source=file.
	Path     string `yaml:"path" env:"CATALOG_PATH"`
	PageSize int    `yaml:"page_size" env:"CATALOG_PAGE_SIZE" env-default:"12"`
	// LoadTimeout - сколько ждём загрузки снапшота при старте.
	LoadTimeout time.Duration `yaml:"load_timeout" env:"CATALOG_LOAD_TIMEOUT" env-default:"10s"`
}

// DBConfig - Postgres для source=postgres.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// MongoConfig - MongoDB для source=mongo. БД берётся из пути URI.
type MongoConfig struct {
	URL string `yaml:"url" env:"MONGO_URL"`
}

// RedisConfig - Redis для троттлинга заявок. Пустой URL - троттлинг в памяти.
type RedisConfig struct {
	URL    string `yaml:"url" env:"REDIS_URL"`
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"vocal:throttle:"`
}

// S3Config - MinIO/S3 для ссылок на скачивание. Пустой endpoint - ссылок нет.
type S3Config struct {
	Endpoint   string        `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey  string        `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey  string        `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket     string        `yaml:"bucket" env:"S3_BUCKET" env-default:"publications"`
	Region     string        `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	UseSSL     bool          `yaml:"use_ssl" env:"S3_USE_SSL" env-default:"false"`
	PresignTTL time.Duration `yaml:"presign_ttl" env:"S3_PRESIGN_TTL" env-default:"15m"`
}

// SubmissionsConfig - имитация отправки форм.
type SubmissionsConfig struct {
	NewsletterDelay time.Duration `yaml:"newsletter_delay" env:"NEWSLETTER_DELAY" env-default:"1500ms"`
	DownloadDelay   time.Duration `yaml:"download_delay" env:"DOWNLOAD_DELAY" env-default:"2s"`
	// Не больше ThrottleMax заявок с одного email за ThrottleWindow.
	// ThrottleMax = 0 - ограничения нет, заявка после валидации всегда принимается.
	ThrottleWindow time.Duration `yaml:"throttle_window" env:"THROTTLE_WINDOW" env-default:"1m"`
	ThrottleMax    int64         `yaml:"throttle_max" env:"THROTTLE_MAX" env-default:"0"`
}

// ThrottleEnabled - включено ли ограничение заявок по email.
func (s SubmissionsConfig) ThrottleEnabled() bool { return s.ThrottleMax > 0 }

// RateLimitConfig - лимит запросов к API на IP.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"true"`
	RPS     float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"20"`
	Burst   int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"40"`
}

// SiteConfig - публичные параметры сайта (ссылки в share и RSS).
type SiteConfig struct {
	BaseURL string `yaml:"base_url" env:"SITE_BASE_URL" env-default:"http://localhost:8080"`
	Title   string `yaml:"title" env:"SITE_TITLE" env-default:"VOCAL Africa"`
}

// MustLoad - обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		return readFile(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return readFile(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		return readFile("local.yaml")
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate - базовая валидация значений.
func (c *Config) validate() error {
	switch c.Catalog.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for source=file")
		}
	case SourcePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("db.url is required for source=postgres")
		}
	case SourceMongo:
		if c.Mongo.URL == "" {
			return fmt.Errorf("mongo.url is required for source=mongo")
		}
	default:
		return fmt.Errorf("catalog.source must be one of embedded|file|postgres|mongo, got %q", c.Catalog.Source)
	}

	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog.page_size must be > 0")
	}

	if c.Submissions.NewsletterDelay < 0 || c.Submissions.DownloadDelay < 0 {
		return fmt.Errorf("submissions delays must be >= 0")
	}

	if c.Submissions.ThrottleMax < 0 {
		return fmt.Errorf("submissions.throttle_max must be >= 0")
	}

	if c.Submissions.ThrottleEnabled() && c.Submissions.ThrottleWindow <= 0 {
		return fmt.Errorf("submissions.throttle_window must be > 0 when throttle_max is set")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be > 0")
	}

	if c.S3.Endpoint != "" && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
	}

	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}

	return nil
}
