package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/vocal-site/internal/models"
	apierrors "github.com/pribylovaa/vocal-site/internal/transport/http/errors"
)

// maxBodyBytes - предел тела JSON-форм.
const maxBodyBytes = 64 << 10

// Service - то, что хендлерам нужно от сервисного слоя.
type Service interface {
	Page(ctx context.Context, slug string) (*models.StaticPage, error)
	Home(ctx context.Context) (*models.Home, error)
	Newsroom(ctx context.Context, f models.FilterState) (*models.ListingPage, error)
	Listing(ctx context.Context, key string, f models.FilterState) (*models.ListingPage, error)
	Social(ctx context.Context, platform string) ([]models.SocialFeed, error)
	NewsFeed(ctx context.Context) ([]models.ContentRecord, error)
	Detail(ctx context.Context, token string, id int) (*models.Detail, error)
	Share(ctx context.Context, token string, id int) (*models.SharePayload, error)
	Download(ctx context.Context, token string, id int) (*models.Download, error)
	Subscribe(ctx context.Context, req models.NewsletterRequest) (*models.Receipt, error)
	Contact(ctx context.Context, req models.ContactRequest) (*models.Receipt, error)
	Donate(ctx context.Context, req models.DonationRequest) (*models.Receipt, error)
}

// Site - параметры канала RSS.
type Site struct {
	Title   string
	BaseURL string
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	svc  Service
	site Site
}

func New(svc Service, site Site) *Handlers {
	return &Handlers{svc: svc, site: site}
}

// writeJSON - единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict - строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrBadRequest, err)
	}

	return nil
}

// contentRef разбирает {type}/{id} из пути.
func contentRef(r *http.Request) (string, int, error) {
	token := chi.URLParam(r, "type")

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || token == "" {
		return "", 0, fmt.Errorf("%w: content ref", apierrors.ErrBadRequest)
	}

	return token, id, nil
}

// filterFromQuery читает type/topic/q/page.
// Отсутствующая страница - 1, нецелая - 400, вне диапазона (в том числе за пределами int)
// приводится сервисом.
func filterFromQuery(r *http.Request) (models.FilterState, error) {
	q := r.URL.Query()

	f := models.NewFilterState().
		WithType(q.Get("type")).
		WithTopic(q.Get("topic")).
		WithQuery(strings.TrimSpace(q.Get("q")))

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		switch {
		case errors.Is(err, strconv.ErrRange):
			// число корректное, но не влезает в int: приводим к краю, дальше клампит пагинатор
			page = math.MaxInt
			if strings.HasPrefix(v, "-") {
				page = 1
			}
		case err != nil:
			return models.FilterState{}, fmt.Errorf("%w: page %q", apierrors.ErrBadRequest, v)
		}

		f = f.WithPage(max(page, 1))
	}

	return f, nil
}
