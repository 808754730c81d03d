package handlers

import (
	"net/http"

	"github.com/pribylovaa/vocal-site/internal/models"
	"github.com/pribylovaa/vocal-site/internal/transport/http/dto"
	apierrors "github.com/pribylovaa/vocal-site/internal/transport/http/errors"
)

func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.NewsletterRequest
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	rc, err := h.svc.Subscribe(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.ReceiptFrom(rc))
}

func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	rc, err := h.svc.Contact(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.ReceiptFrom(rc))
}

func (h *Handlers) Donate(w http.ResponseWriter, r *http.Request) {
	var req models.DonationRequest
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	rc, err := h.svc.Donate(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.ReceiptFrom(rc))
}
