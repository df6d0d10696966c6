package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	mw "github.com/rentbounce/bouncer/internal/api/middleware"
	"github.com/rentbounce/bouncer/internal/domain"
	"github.com/rentbounce/bouncer/internal/service"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type createBookingRequest struct {
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone,omitempty"`
	BounceHouse     string         `json:"bounce_house"`
	EventDate       time.Time      `json:"event_date"`
	DeliveryAddress domain.Address `json:"delivery_address"`
}

// Create places a booking with the tenant resolved from the host.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	company := mw.CompanyFromContext(r.Context())

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking := &domain.Booking{
		CompanyID:       company.ID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		BounceHouse:     req.BounceHouse,
		EventDate:       req.EventDate,
		DeliveryAddress: req.DeliveryAddress,
	}

	if err := h.svc.Create(r.Context(), booking); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// List returns the operator's own bookings, scoped by the company in
// their token.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := operatorCompanyID(w, r)
	if !ok {
		return
	}
	bookings, err := h.svc.ListByCompany(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings, "count": len(bookings)})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := operatorCompanyID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, companyID, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// operatorCompanyID pulls the company scope out of the caller's token.
func operatorCompanyID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims := mw.ClaimsFromContext(r.Context())
	if claims == nil || claims.CompanyID == "" {
		writeError(w, http.StatusForbidden, "company scope required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		writeError(w, http.StatusForbidden, "company scope required")
		return uuid.Nil, false
	}
	return id, true
}
