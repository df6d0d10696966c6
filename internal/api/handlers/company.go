package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rentbounce/bouncer/internal/domain"
	"github.com/rentbounce/bouncer/internal/service"
	"github.com/rentbounce/bouncer/internal/store"
)

type CompanyHandler struct {
	svc *service.CompanyService
}

func NewCompanyHandler(svc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

type companyRequest struct {
	Name           string         `json:"name"`
	Subdomain      string         `json:"subdomain"`
	CustomDomain   string         `json:"custom_domain,omitempty"`
	Active         *bool          `json:"active,omitempty"`
	Address        domain.Address `json:"address"`
	DeliveryRadius float64        `json:"delivery_radius,omitempty"`
	DeliveryFee    float64        `json:"delivery_fee,omitempty"`
	LogoURL        string         `json:"logo_url,omitempty"`
	PrimaryColor   string         `json:"primary_color,omitempty"`
	WaiverText     string         `json:"waiver_text,omitempty"`
}

func (req *companyRequest) apply(c *domain.Company) {
	c.Name = req.Name
	c.Subdomain = req.Subdomain
	c.CustomDomain = req.CustomDomain
	c.Active = true
	if req.Active != nil {
		c.Active = *req.Active
	}
	c.Address = req.Address
	c.DeliveryRadius = req.DeliveryRadius
	c.DeliveryFee = req.DeliveryFee
	c.LogoURL = req.LogoURL
	c.PrimaryColor = req.PrimaryColor
	c.WaiverText = req.WaiverText
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company := &domain.Company{}
	req.apply(company)

	if err := h.svc.Create(r.Context(), company); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (h *CompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	company, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.ListActive(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": companies, "count": len(companies)})
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	company, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.apply(company)

	if err := h.svc.Update(r.Context(), company); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Geocode triggers coordinate enrichment for one company and reports
// the outcome. Enrichment failures are outcomes, not HTTP errors.
func (h *CompanyHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	outcome, err := h.svc.Geocode(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// GeocodeAll runs the throttled batch enrichment over active companies
// missing coordinates.
func (h *CompanyHandler) GeocodeAll(w http.ResponseWriter, r *http.Request) {
	outcomes, err := h.svc.GeocodeAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": outcomes, "count": len(outcomes)})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrCompanyNameRequired),
		errors.Is(err, service.ErrSubdomainRequired),
		errors.Is(err, service.ErrSubdomainInvalid),
		errors.Is(err, service.ErrSubdomainReserved),
		errors.Is(err, service.ErrCustomerNameRequired),
		errors.Is(err, service.ErrBounceHouseRequired),
		errors.Is(err, service.ErrEventDateRequired),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrSignerRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
