package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rentbounce/bouncer/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrCompanyNameRequired = errors.New("company name is required")
	ErrSubdomainRequired   = errors.New("subdomain is required")
	ErrSubdomainInvalid    = errors.New("subdomain must be lowercase letters, digits, or hyphens")
	ErrSubdomainReserved   = errors.New("subdomain is reserved")
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// reservedSubdomains can never belong to a tenant: the tenant resolver
// treats them as platform hosts.
var reservedSubdomains = map[string]bool{"www": true, "api": true}

type CompanyService struct {
	store    domain.CompanyStore
	location *LocationService
	logger   *zap.Logger
}

func NewCompanyService(store domain.CompanyStore, location *LocationService, logger *zap.Logger) *CompanyService {
	return &CompanyService{store: store, location: location, logger: logger}
}

func (s *CompanyService) Create(ctx context.Context, c *domain.Company) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCompanyNameRequired
	}
	c.Subdomain = strings.ToLower(strings.TrimSpace(c.Subdomain))
	if c.Subdomain == "" {
		return ErrSubdomainRequired
	}
	if !subdomainPattern.MatchString(c.Subdomain) {
		return ErrSubdomainInvalid
	}
	if reservedSubdomains[c.Subdomain] {
		return ErrSubdomainReserved
	}

	if err := s.store.Create(ctx, c); err != nil {
		return err
	}

	// Coordinates are populated lazily; a failed geocode here is not a
	// failed create.
	outcome := s.location.UpdateCompanyCoordinates(ctx, c)
	if outcome.Status == EnrichmentFailed {
		s.logger.Warn("company created without coordinates",
			zap.String("company_id", c.ID.String()),
			zap.String("reason", outcome.Reason))
	}
	return nil
}

func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.store.GetByID(ctx, id)
}

func (s *CompanyService) ListActive(ctx context.Context) ([]domain.Company, error) {
	return s.store.ListActive(ctx)
}

func (s *CompanyService) Update(ctx context.Context, c *domain.Company) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCompanyNameRequired
	}
	c.Subdomain = strings.ToLower(strings.TrimSpace(c.Subdomain))
	if !subdomainPattern.MatchString(c.Subdomain) {
		return ErrSubdomainInvalid
	}
	if reservedSubdomains[c.Subdomain] {
		return ErrSubdomainReserved
	}
	return s.store.Update(ctx, c)
}

func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// Geocode re-runs coordinate enrichment for one company.
func (s *CompanyService) Geocode(ctx context.Context, id uuid.UUID) (EnrichmentOutcome, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return EnrichmentOutcome{}, err
	}
	return s.location.UpdateCompanyCoordinates(ctx, c), nil
}

// GeocodeAll runs the sequential batch enrichment over every active
// company missing coordinates.
func (s *CompanyService) GeocodeAll(ctx context.Context) ([]EnrichmentOutcome, error) {
	companies, err := s.store.ListActiveMissingCoordinates(ctx)
	if err != nil {
		return nil, err
	}
	return s.location.BatchUpdateCompanyCoordinates(ctx, companies), nil
}
