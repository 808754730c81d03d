package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/vocal-site/internal/pkg/log"
	"github.com/pribylovaa/vocal-site/internal/rss"
	"github.com/pribylovaa/vocal-site/internal/transport/http/dto"
	apierrors "github.com/pribylovaa/vocal-site/internal/transport/http/errors"
)

func (h *Handlers) Newsroom(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.Newsroom(r.Context(), f)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListingFrom(page))
}

func (h *Handlers) Listing(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.Listing(r.Context(), chi.URLParam(r, "listing"), f)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListingFrom(page))
}

func (h *Handlers) Detail(w http.ResponseWriter, r *http.Request) {
	token, id, err := contentRef(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	d, err := h.svc.Detail(r.Context(), token, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DetailFrom(d))
}

func (h *Handlers) Share(w http.ResponseWriter, r *http.Request) {
	token, id, err := contentRef(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Share(r.Context(), token, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ShareFrom(p))
}

// Download отвечает после искусственной задержки подготовки файла.
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	token, id, err := contentRef(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	d, err := h.svc.Download(r.Context(), token, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DownloadFrom(d))
}

// Feed отдаёт RSS 2.0 всех новостей.
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.Feed"

	news, err := h.svc.NewsFeed(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")

	err = rss.Write(w, rss.Channel{
		Title:       h.site.Title,
		BaseURL:     h.site.BaseURL,
		Description: "News & Publications",
	}, news)
	if err != nil {
		// заголовок уже ушёл, клиенту ответить нечем
		log.From(r.Context()).Error("feed_write_failed",
			slog.String("op", op),
			slog.Int("items", len(news)),
			log.Err(err),
		)
	}
}
