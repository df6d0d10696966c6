package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rentbounce/bouncer/internal/service"
)

type WaiverHandler struct {
	svc *service.WaiverService
}

func NewWaiverHandler(svc *service.WaiverService) *WaiverHandler {
	return &WaiverHandler{svc: svc}
}

type createWaiverRequest struct {
	BookingID string `json:"booking_id"`
}

func (h *WaiverHandler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := operatorCompanyID(w, r)
	if !ok {
		return
	}

	var req createWaiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking_id")
		return
	}

	waiver, err := h.svc.CreateForBooking(r.Context(), companyID, bookingID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, waiver)
}

func (h *WaiverHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	companyID, ok := operatorCompanyID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	waiver, err := h.svc.GetByID(r.Context(), id, companyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, waiver)
}

func (h *WaiverHandler) ListByBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	waivers, err := h.svc.ListByBooking(r.Context(), bookingID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"waivers": waivers, "count": len(waivers)})
}

type signWaiverRequest struct {
	SignerName  string `json:"signer_name"`
	SignerEmail string `json:"signer_email"`
}

func (h *WaiverHandler) Sign(w http.ResponseWriter, r *http.Request) {
	companyID, ok := operatorCompanyID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req signWaiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Sign(r.Context(), id, companyID, req.SignerName, req.SignerEmail); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed"})
}
