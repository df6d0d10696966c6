package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDeliveryRadius is the delivery radius in miles applied when a
// company hasn't configured one.
const DefaultDeliveryRadius = 25.0

// Coordinates is a latitude/longitude pair in floating-point degrees.
// It is always embedded in an address or a transient query result,
// never stored on its own.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Address struct {
	Street      string       `json:"street"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Zip         string       `json:"zip"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Format renders the address as a single geocodable query string,
// skipping blank components.
func (a Address) Format() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Company is a tenant: an operator account owning its own inventory,
// branding, and delivery policy within the shared platform.
type Company struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Subdomain      string    `json:"subdomain"`
	CustomDomain   string    `json:"custom_domain,omitempty"`
	Active         bool      `json:"active"`
	Address        Address   `json:"address"`
	DeliveryRadius float64   `json:"delivery_radius"` // miles; 0 means unset
	DeliveryFee    float64   `json:"delivery_fee"`
	LogoURL        string    `json:"logo_url,omitempty"`
	PrimaryColor   string    `json:"primary_color,omitempty"`
	WaiverText     string    `json:"waiver_text,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EffectiveDeliveryRadius returns the configured radius, or the platform
// default when unset.
func (c *Company) EffectiveDeliveryRadius() float64 {
	if c.DeliveryRadius <= 0 {
		return DefaultDeliveryRadius
	}
	return c.DeliveryRadius
}

// HasCoordinates reports whether the company's address has been geocoded.
// Companies without coordinates are excluded from distance computations.
func (c *Company) HasCoordinates() bool {
	return c.Address.Coordinates != nil
}

// CompanyDistance is a transient per-query projection pairing a company
// with its computed distance from a customer location. Never persisted.
type CompanyDistance struct {
	Company      *Company `json:"company"`
	Distance     float64  `json:"distance"`
	WithinRadius bool     `json:"within_radius"`
}

// PublicCompany is the customer-facing serialization of a company.
// Distance is only set on delivery-lookup responses.
type PublicCompany struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Address        Address   `json:"address"`
	DeliveryRadius float64   `json:"delivery_radius"`
	DeliveryFee    float64   `json:"delivery_fee"`
	LogoURL        string    `json:"logo_url,omitempty"`
	PrimaryColor   string    `json:"primary_color,omitempty"`
	Distance       *float64  `json:"distance,omitempty"`
}

// Public returns the customer-facing view of the company.
func (c *Company) Public() PublicCompany {
	return PublicCompany{
		ID:             c.ID,
		Name:           c.Name,
		Address:        c.Address,
		DeliveryRadius: c.EffectiveDeliveryRadius(),
		DeliveryFee:    c.DeliveryFee,
		LogoURL:        c.LogoURL,
		PrimaryColor:   c.PrimaryColor,
	}
}

// PublicWithDistance returns the customer-facing view carrying the
// computed distance in miles.
func (c *Company) PublicWithDistance(distance float64) PublicCompany {
	p := c.Public()
	p.Distance = &distance
	return p
}
