package service

import (
	"context"
	"testing"

	"github.com/rentbounce/bouncer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCompanyService(g *stubGeocoder) (*CompanyService, *stubCompanyStore) {
	cs := newStubCompanyStore()
	location := newTestLocationService(g, nil, cs, LocationConfig{})
	return NewCompanyService(cs, location, zap.NewNop()), cs
}

func TestCompanyCreateValidation(t *testing.T) {
	svc, _ := newTestCompanyService(&stubGeocoder{})
	ctx := context.Background()

	err := svc.Create(ctx, &domain.Company{Subdomain: "jump"})
	assert.ErrorIs(t, err, ErrCompanyNameRequired)

	err = svc.Create(ctx, &domain.Company{Name: "Jump"})
	assert.ErrorIs(t, err, ErrSubdomainRequired)

	err = svc.Create(ctx, &domain.Company{Name: "Jump", Subdomain: "has space"})
	assert.ErrorIs(t, err, ErrSubdomainInvalid)

	err = svc.Create(ctx, &domain.Company{Name: "Jump", Subdomain: "-leading"})
	assert.ErrorIs(t, err, ErrSubdomainInvalid)

	err = svc.Create(ctx, &domain.Company{Name: "Jump", Subdomain: "www"})
	assert.ErrorIs(t, err, ErrSubdomainReserved)

	err = svc.Create(ctx, &domain.Company{Name: "Jump", Subdomain: "api"})
	assert.ErrorIs(t, err, ErrSubdomainReserved)
}

func TestCompanyCreateNormalizesSubdomain(t *testing.T) {
	svc, _ := newTestCompanyService(&stubGeocoder{})

	c := &domain.Company{Name: "Jump Austin", Subdomain: "  JumpAustin  "}
	require.NoError(t, svc.Create(context.Background(), c))
	assert.Equal(t, "jumpaustin", c.Subdomain)
}

func TestCompanyCreateGeocodesAddress(t *testing.T) {
	g := &stubGeocoder{coords: &domain.Coordinates{Latitude: 30.2747, Longitude: -97.7404}}
	svc, cs := newTestCompanyService(g)

	c := &domain.Company{
		Name:      "Jump Austin",
		Subdomain: "jumpaustin",
		Address:   domain.Address{City: "Austin", State: "TX"},
	}
	require.NoError(t, svc.Create(context.Background(), c))

	assert.Equal(t, 1, g.calls)
	assert.True(t, c.HasCoordinates())
	assert.Contains(t, cs.updated, c.ID)
}

func TestCompanyCreateSurvivesGeocodeFailure(t *testing.T) {
	// A company with an ungeocodable address is still created;
	// coordinates are populated lazily later.
	svc, _ := newTestCompanyService(&stubGeocoder{})

	c := &domain.Company{
		Name:      "Jump Austin",
		Subdomain: "jumpaustin",
		Address:   domain.Address{City: "Nowhere", State: "ZZ"},
	}
	require.NoError(t, svc.Create(context.Background(), c))
	assert.False(t, c.HasCoordinates())
}

func TestCompanyGeocodeAllOnlyMissing(t *testing.T) {
	g := &stubGeocoder{coords: &domain.Coordinates{Latitude: 30, Longitude: -97}}
	cs := newStubCompanyStore(
		activeCompany("Done", 30, -97, 25),
		domain.Company{Name: "Pending", Active: true, Address: domain.Address{City: "Austin", State: "TX"}},
	)
	location := newTestLocationService(g, nil, cs, LocationConfig{})
	svc := NewCompanyService(cs, location, zap.NewNop())

	outcomes, err := svc.GeocodeAll(context.Background())
	require.NoError(t, err)

	// Only the company missing coordinates is in the batch.
	require.Len(t, outcomes, 1)
	assert.Equal(t, "Pending", outcomes[0].Company)
	assert.Equal(t, EnrichmentUpdated, outcomes[0].Status)
}
