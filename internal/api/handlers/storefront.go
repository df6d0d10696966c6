package handlers

import (
	"net/http"

	mw "github.com/rentbounce/bouncer/internal/api/middleware"
)

// StorefrontHandler serves tenant-scoped public pages: branding and the
// waiver template. Both run behind ResolveTenant + RequireCompany.
type StorefrontHandler struct{}

func NewStorefrontHandler() *StorefrontHandler {
	return &StorefrontHandler{}
}

func (h *StorefrontHandler) Branding(w http.ResponseWriter, r *http.Request) {
	company := mw.CompanyFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"name":          company.Name,
		"logo_url":      company.LogoURL,
		"primary_color": company.PrimaryColor,
		"address":       company.Address,
		"delivery_fee":  company.DeliveryFee,
	})
}

func (h *StorefrontHandler) WaiverTemplate(w http.ResponseWriter, r *http.Request) {
	company := mw.CompanyFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"company":     company.Name,
		"waiver_text": company.WaiverText,
	})
}
