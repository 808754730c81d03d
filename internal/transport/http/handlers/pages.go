package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/vocal-site/internal/transport/http/dto"
	apierrors "github.com/pribylovaa/vocal-site/internal/transport/http/errors"
)

func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Page(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PageFrom(p))
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.svc.Home(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HomeFrom(home))
}

func (h *Handlers) Social(w http.ResponseWriter, r *http.Request) {
	feeds, err := h.svc.Social(r.Context(), r.URL.Query().Get("platform"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SocialFrom(feeds))
}
