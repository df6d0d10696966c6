package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rentbounce/bouncer/internal/domain"
	"github.com/rentbounce/bouncer/internal/service"
	"github.com/rentbounce/bouncer/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedGeocoder struct {
	coords *domain.Coordinates
}

func (g *fixedGeocoder) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	return g.coords, nil
}

func (g *fixedGeocoder) Name() string { return "fixed" }

type fixedZipLookup struct {
	coords *domain.Coordinates
}

func (z *fixedZipLookup) LookupZip(ctx context.Context, zip string) (*domain.Coordinates, error) {
	return z.coords, nil
}

// listCompanyStore serves ListActive from a fixed slice; nothing else in
// the delivery-options path touches the store.
type listCompanyStore struct {
	active []domain.Company
}

func (s *listCompanyStore) ListActive(ctx context.Context) ([]domain.Company, error) {
	return s.active, nil
}

func (s *listCompanyStore) Create(ctx context.Context, c *domain.Company) error { return nil }
func (s *listCompanyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return nil, store.ErrNotFound
}
func (s *listCompanyStore) GetActiveBySubdomain(ctx context.Context, subdomain string) (*domain.Company, error) {
	return nil, store.ErrNotFound
}
func (s *listCompanyStore) GetActiveByCustomDomain(ctx context.Context, d string) (*domain.Company, error) {
	return nil, store.ErrNotFound
}
func (s *listCompanyStore) ListActiveMissingCoordinates(ctx context.Context) ([]domain.Company, error) {
	return nil, nil
}
func (s *listCompanyStore) Update(ctx context.Context, c *domain.Company) error { return nil }
func (s *listCompanyStore) UpdateCoordinates(ctx context.Context, id uuid.UUID, coords domain.Coordinates) error {
	return nil
}
func (s *listCompanyStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func companyAt(name string, lat, lon, radius float64) domain.Company {
	return domain.Company{
		ID:             uuid.New(),
		Name:           name,
		Active:         true,
		DeliveryRadius: radius,
		Address: domain.Address{
			City:        "Austin",
			State:       "TX",
			Coordinates: &domain.Coordinates{Latitude: lat, Longitude: lon},
		},
	}
}

func newLocationHandler(g *fixedGeocoder, z *fixedZipLookup, companies []domain.Company) *LocationHandler {
	svc := service.NewLocationService(g, z, &listCompanyStore{active: companies},
		service.LocationConfig{ZipLookupEnabled: z != nil}, zap.NewNop())
	return NewLocationHandler(svc)
}

func TestDeliveryOptionsNoParams(t *testing.T) {
	h := newLocationHandler(&fixedGeocoder{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/delivery-options", nil)
	rec := httptest.NewRecorder()
	h.DeliveryOptions(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(),
		"Please provide zipCode, coordinates (latitude/longitude), or city/state")
}

func TestDeliveryOptionsInvalidCoordinates(t *testing.T) {
	h := newLocationHandler(&fixedGeocoder{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/delivery-options?latitude=abc&longitude=-97.74", nil)
	rec := httptest.NewRecorder()
	h.DeliveryOptions(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid latitude/longitude")
}

func TestDeliveryOptionsUnresolvableLocation(t *testing.T) {
	// Geocoder has no match for the city/state query.
	h := newLocationHandler(&fixedGeocoder{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/delivery-options?city=Nowhere&state=ZZ", nil)
	rec := httptest.NewRecorder()
	h.DeliveryOptions(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unable to resolve location")
}

func TestDeliveryOptionsByZip(t *testing.T) {
	austin := domain.Coordinates{Latitude: 30.2747, Longitude: -97.7404}
	h := newLocationHandler(
		&fixedGeocoder{},
		&fixedZipLookup{coords: &austin},
		[]domain.Company{
			companyAt("Far", 30.6, -97.7, 25),  // ~22 miles out
			companyAt("Near", 30.3, -97.7, 25), // ~3 miles out
			companyAt("Other State", 40.7, -74.0, 25),
		},
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/delivery-options?zipCode=78701", nil)
	rec := httptest.NewRecorder()
	h.DeliveryOptions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Companies []domain.PublicCompany `json:"companies"`
		Count     int                    `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "Near", resp.Companies[0].Name)
	assert.Equal(t, "Far", resp.Companies[1].Name)
	require.NotNil(t, resp.Companies[0].Distance)
	require.NotNil(t, resp.Companies[1].Distance)
	assert.Less(t, *resp.Companies[0].Distance, *resp.Companies[1].Distance)
}

func TestDeliveryOptionsByCoordinates(t *testing.T) {
	h := newLocationHandler(&fixedGeocoder{}, nil, []domain.Company{
		companyAt("Near", 30.3, -97.7, 25),
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/delivery-options?latitude=30.2747&longitude=-97.7404", nil)
	rec := httptest.NewRecorder()
	h.DeliveryOptions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
}
