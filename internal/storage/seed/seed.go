// seed - датасет в YAML: встроенный в бинарь или из файла.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/storage"
)

//go:embed content.yaml
var embedded []byte

// DateLayout - формат даты публикации в датасете.
const DateLayout = "2006-01-02"

type document struct {
	Pages  []pageDoc   `yaml:"pages"`
	Social []socialDoc `yaml:"social"`
	News   []recordDoc `yaml:"news"`
	Media  []recordDoc `yaml:"media"`
}

type pageDoc struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type socialDoc struct {
	ID       int    `yaml:"id"`
	Platform string `yaml:"platform"`
	Handle   string `yaml:"handle"`
	Date     string `yaml:"date"`
	Content  string `yaml:"content"`
	ImageURL string `yaml:"image_url"`
	Likes    string `yaml:"likes"`
	Comments string `yaml:"comments"`
	Shares   string `yaml:"shares"`
}

type recordDoc struct {
	ID          int    `yaml:"id"`
	Type        string `yaml:"type"`
	Title       string `yaml:"title"`
	Excerpt     string `yaml:"excerpt"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Category    string `yaml:"category"`
	Duration    string `yaml:"duration"`
	Location    string `yaml:"location"`
	ImageURL    string `yaml:"image_url"`
	EmbedURL    string `yaml:"embed_url"`
	Content     string `yaml:"content"`
}

// Source - storage.Source поверх YAML.
type Source struct {
	name string
	read func() ([]byte, error)
}

var _ storage.Source = (*Source)(nil)

// Embedded - датасет, вшитый в бинарь.
func Embedded() *Source {
	return &Source{
		name: "embedded",
		read: func() ([]byte, error) { return embedded, nil },
	}
}

// File - датасет из YAML-файла. Файл читается на каждом Load.
func File(path string) *Source {
	return &Source{
		name: path,
		read: func() ([]byte, error) { return os.ReadFile(path) },
	}
}

func (s *Source) Load(_ context.Context) (*storage.Dataset, error) {
	const op = "storage.seed.Load"

	raw, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", op, s.name, err)
	}

	ds, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, s.name, err)
	}

	return ds, nil
}

func (s *Source) Close() error { return nil }

// Decode разбирает YAML-документ датасета.
// Неизвестные поля - ошибка, чтобы опечатки в датасете не терялись молча.
func Decode(r io.Reader) (*storage.Dataset, error) {
	var doc document

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %w", storage.ErrInvalidDataset, err)
	}

	news, err := toRecords(doc.News)
	if err != nil {
		return nil, err
	}

	media, err := toRecords(doc.Media)
	if err != nil {
		return nil, err
	}

	ds := &storage.Dataset{
		News:   news,
		Media:  media,
		Pages:  make([]models.StaticPage, 0, len(doc.Pages)),
		Social: make([]models.SocialPost, 0, len(doc.Social)),
	}

	for _, p := range doc.Pages {
		ds.Pages = append(ds.Pages, models.StaticPage(p))
	}

	for _, p := range doc.Social {
		ds.Social = append(ds.Social, models.SocialPost(p))
	}

	return ds, nil
}

func toRecords(in []recordDoc) ([]models.ContentRecord, error) {
	out := make([]models.ContentRecord, 0, len(in))

	for _, d := range in {
		date, err := time.Parse(DateLayout, d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: bad date %q", storage.ErrInvalidDataset, d.ID, d.Date)
		}

		out = append(out, models.ContentRecord{
			ID:          d.ID,
			Title:       d.Title,
			Excerpt:     d.Excerpt,
			Description: d.Description,
			Date:        date,
			Type:        models.ContentType(d.Type),
			Category:    d.Category,
			ImageURL:    d.ImageURL,
			Duration:    d.Duration,
			Content:     d.Content,
			EmbedURL:    d.EmbedURL,
			Location:    d.Location,
		})
	}

	return out, nil
}
