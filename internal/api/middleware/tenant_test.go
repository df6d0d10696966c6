package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rentbounce/bouncer/internal/domain"
	"github.com/rentbounce/bouncer/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCompanyStore serves tenant lookups from maps; every other method
// is unused by the resolver.
type fakeCompanyStore struct {
	bySubdomain    map[string]*domain.Company
	byCustomDomain map[string]*domain.Company
	err            error
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{
		bySubdomain:    make(map[string]*domain.Company),
		byCustomDomain: make(map[string]*domain.Company),
	}
}

func (f *fakeCompanyStore) GetActiveBySubdomain(ctx context.Context, subdomain string) (*domain.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.bySubdomain[subdomain]; ok {
		return c, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeCompanyStore) GetActiveByCustomDomain(ctx context.Context, d string) (*domain.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.byCustomDomain[d]; ok {
		return c, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeCompanyStore) Create(ctx context.Context, c *domain.Company) error { return nil }
func (f *fakeCompanyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return nil, store.ErrNotFound
}
func (f *fakeCompanyStore) ListActive(ctx context.Context) ([]domain.Company, error) {
	return nil, nil
}
func (f *fakeCompanyStore) ListActiveMissingCoordinates(ctx context.Context) ([]domain.Company, error) {
	return nil, nil
}
func (f *fakeCompanyStore) Update(ctx context.Context, c *domain.Company) error { return nil }
func (f *fakeCompanyStore) UpdateCoordinates(ctx context.Context, id uuid.UUID, coords domain.Coordinates) error {
	return nil
}
func (f *fakeCompanyStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

const testPlatformDomain = "rentbounce.com"

// resolve runs a request with the given host through ResolveTenant and
// reports the recorder plus the company the downstream handler saw.
func resolve(t *testing.T, cs domain.CompanyStore, host string) (*httptest.ResponseRecorder, *domain.Company, bool) {
	t.Helper()

	var seen *domain.Company
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seen = CompanyFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/storefront", nil)
	req.Host = host
	rec := httptest.NewRecorder()

	ResolveTenant(cs, testPlatformDomain, zap.NewNop())(next).ServeHTTP(rec, req)
	return rec, seen, reached
}

func TestResolveTenantMissingHost(t *testing.T) {
	rec, _, reached := resolve(t, newFakeCompanyStore(), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Host header is required")
	assert.False(t, reached)
}

func TestResolveTenantSubdomain(t *testing.T) {
	cs := newFakeCompanyStore()
	company := &domain.Company{ID: uuid.New(), Name: "Jump Austin", Subdomain: "abc", Active: true}
	cs.bySubdomain["abc"] = company

	rec, seen, reached := resolve(t, cs, "abc.rentbounce.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, reached)
	require.NotNil(t, seen)
	assert.Equal(t, company.ID, seen.ID)
}

func TestResolveTenantReservedSubdomains(t *testing.T) {
	for _, host := range []string{"www.rentbounce.com", "api.rentbounce.com"} {
		rec, seen, reached := resolve(t, newFakeCompanyStore(), host)

		assert.Equal(t, http.StatusOK, rec.Code, "host %s", host)
		assert.True(t, reached, "host %s", host)
		assert.Nil(t, seen, "host %s should carry no tenant", host)
	}
}

func TestResolveTenantLocalhost(t *testing.T) {
	rec, seen, reached := resolve(t, newFakeCompanyStore(), "localhost:8080")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Nil(t, seen)
}

func TestResolveTenantCustomDomain(t *testing.T) {
	cs := newFakeCompanyStore()
	company := &domain.Company{ID: uuid.New(), Name: "Custom", CustomDomain: "customrental.com", Active: true}
	cs.byCustomDomain["customrental.com"] = company

	rec, seen, reached := resolve(t, cs, "customrental.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, reached)
	require.NotNil(t, seen)
	assert.Equal(t, company.ID, seen.ID)
}

func TestResolveTenantSubdomainNotFound(t *testing.T) {
	rec, _, reached := resolve(t, newFakeCompanyStore(), "ghost.rentbounce.com")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "tenant not found")
	assert.False(t, reached)
}

func TestResolveTenantCustomDomainNotFound(t *testing.T) {
	rec, _, reached := resolve(t, newFakeCompanyStore(), "unknownrental.com")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, reached)
}

func TestResolveTenantStoreError(t *testing.T) {
	cs := newFakeCompanyStore()
	cs.err = errors.New("connection refused")

	rec, _, reached := resolve(t, cs, "abc.rentbounce.com")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, reached)
}

func TestRequireCompanyWithoutTenant(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/storefront", nil)
	rec := httptest.NewRecorder()

	RequireCompany(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "company context is required")
}

func TestRequireCompanyWithTenant(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	company := &domain.Company{ID: uuid.New(), Active: true}
	req := httptest.NewRequest(http.MethodGet, "/v1/storefront", nil)
	req = req.WithContext(context.WithValue(req.Context(), companyContextKey, company))
	rec := httptest.NewRecorder()

	RequireCompany(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
