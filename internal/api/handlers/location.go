package handlers

import (
	"net/http"
	"strconv"

	"github.com/rentbounce/bouncer/internal/domain"
	"github.com/rentbounce/bouncer/internal/service"
)

type LocationHandler struct {
	svc *service.LocationService
}

func NewLocationHandler(svc *service.LocationService) *LocationHandler {
	return &LocationHandler{svc: svc}
}

type deliveryOptionsResponse struct {
	Companies []domain.PublicCompany `json:"companies"`
	Count     int                    `json:"count"`
}

// DeliveryOptions resolves the customer's location from the query and
// returns every active company able to deliver there, closest first.
// The lookup runs over all tenants, independent of any resolved tenant.
func (h *LocationHandler) DeliveryOptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	zip := q.Get("zipCode")
	latStr := q.Get("latitude")
	lonStr := q.Get("longitude")
	city := q.Get("city")
	state := q.Get("state")

	var coords *domain.Coordinates

	switch {
	case zip != "":
		coords = h.svc.ZipCodeCoordinates(r.Context(), zip)

	case latStr != "" && lonStr != "":
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			writeError(w, http.StatusBadRequest, "invalid latitude/longitude")
			return
		}
		coords = &domain.Coordinates{Latitude: lat, Longitude: lon}

	case city != "" && state != "":
		coords = h.svc.GeocodeAddress(r.Context(), city+", "+state)

	default:
		writeError(w, http.StatusBadRequest,
			"Please provide zipCode, coordinates (latitude/longitude), or city/state")
		return
	}

	if coords == nil {
		writeError(w, http.StatusNotFound, "unable to resolve location")
		return
	}

	companies, err := h.svc.DeliveryOptions(r.Context(), *coords)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load delivery options")
		return
	}

	writeJSON(w, http.StatusOK, deliveryOptionsResponse{
		Companies: companies,
		Count:     len(companies),
	})
}
