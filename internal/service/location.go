package service

import (
	"context"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rentbounce/bouncer/internal/domain"
	"github.com/rentbounce/bouncer/internal/geo"
	"github.com/rentbounce/bouncer/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// EnrichmentStatus describes the outcome of a coordinate enrichment
// attempt. Enrichment is best-effort: failures are reported in the
// outcome, never returned as errors.
type EnrichmentStatus string

const (
	EnrichmentUpdated EnrichmentStatus = "updated"
	EnrichmentSkipped EnrichmentStatus = "skipped" // coordinates already present
	EnrichmentFailed  EnrichmentStatus = "failed"
)

type EnrichmentOutcome struct {
	Company     string              `json:"company"`
	Status      EnrichmentStatus    `json:"status"`
	Reason      string              `json:"reason,omitempty"`
	Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
}

// LocationConfig carries the provider configuration explicitly so tests
// can inject credentials and toggles per case instead of mutating
// process-wide state.
type LocationConfig struct {
	ZipLookupEnabled bool
	// GeocodeDelay is the enforced pause between sequential batch
	// geocoding calls. Zero disables the throttle (tests only).
	GeocodeDelay time.Duration
	CacheTTL     time.Duration
}

// LocationService geocodes locations and ranks companies by delivery
// distance.
type LocationService struct {
	geocoder  geo.Geocoder
	zipLookup geo.ZipLookup
	companies domain.CompanyStore
	logger    *zap.Logger
	cfg       LocationConfig
	cache     *gocache.Cache
	throttle  *rate.Limiter
}

func NewLocationService(geocoder geo.Geocoder, zipLookup geo.ZipLookup, companies domain.CompanyStore, cfg LocationConfig, logger *zap.Logger) *LocationService {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	limit := rate.Inf
	if cfg.GeocodeDelay > 0 {
		limit = rate.Every(cfg.GeocodeDelay)
	}
	return &LocationService{
		geocoder:  geocoder,
		zipLookup: zipLookup,
		companies: companies,
		logger:    logger,
		cfg:       cfg,
		cache:     gocache.New(ttl, 10*time.Minute),
		throttle:  rate.NewLimiter(limit, 1),
	}
}

// GeocodeAddress resolves a free-text address to coordinates, or nil
// when the provider has no match or the call fails. Provider errors are
// logged, never surfaced.
func (s *LocationService) GeocodeAddress(ctx context.Context, address string) *domain.Coordinates {
	if address == "" {
		return nil
	}

	if v, ok := s.cache.Get("addr:" + address); ok {
		coords := v.(domain.Coordinates)
		return &coords
	}

	coords, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		metrics.GeocodeRequests.WithLabelValues(s.geocoder.Name(), metrics.ResultError).Inc()
		s.logger.Warn("geocoding failed",
			zap.String("provider", s.geocoder.Name()),
			zap.String("address", address),
			zap.Error(err))
		return nil
	}
	if coords == nil {
		metrics.GeocodeRequests.WithLabelValues(s.geocoder.Name(), metrics.ResultMiss).Inc()
		return nil
	}

	metrics.GeocodeRequests.WithLabelValues(s.geocoder.Name(), metrics.ResultHit).Inc()
	s.cache.Set("addr:"+address, *coords, gocache.DefaultExpiration)
	return coords
}

// ZipCodeCoordinates resolves a 5-digit zip to coordinates. The free zip
// lookup provider is tried first when enabled; when it has no match (or
// is disabled) the zip is geocoded as a free-text query. Any provider
// error degrades to nil, logged.
func (s *LocationService) ZipCodeCoordinates(ctx context.Context, zip string) *domain.Coordinates {
	zip = NormalizeZipCode(zip)
	if zip == "" {
		return nil
	}

	if s.cfg.ZipLookupEnabled && s.zipLookup != nil {
		if v, ok := s.cache.Get("zip:" + zip); ok {
			coords := v.(domain.Coordinates)
			return &coords
		}

		coords, err := s.zipLookup.LookupZip(ctx, zip)
		if err != nil {
			s.logger.Warn("zip lookup failed", zap.String("zip", zip), zap.Error(err))
			return nil
		}
		if coords != nil {
			s.cache.Set("zip:"+zip, *coords, gocache.DefaultExpiration)
			return coords
		}
	}

	return s.GeocodeAddress(ctx, zip)
}

// NormalizeZipCode strips all whitespace and truncates to 5 characters.
// It does not validate digits: lenient normalization, not validation.
func NormalizeZipCode(zip string) string {
	stripped := strings.Join(strings.Fields(zip), "")
	r := []rune(stripped)
	if len(r) > 5 {
		r = r[:5]
	}
	return string(r)
}

// DistancesToCompanies computes each company's distance in miles from
// the customer location. Companies without geocoded coordinates are
// excluded, not errored. Distances are rounded to one decimal; results
// are sorted ascending with input order preserved for ties. Both in-
// and out-of-radius companies are returned — filtering composes on top.
func (s *LocationService) DistancesToCompanies(customer domain.Coordinates, companies []domain.Company) []domain.CompanyDistance {
	results := make([]domain.CompanyDistance, 0, len(companies))
	for i := range companies {
		c := &companies[i]
		if !c.HasCoordinates() {
			continue
		}
		d := geo.RoundMiles(geo.Distance(
			customer.Latitude, customer.Longitude,
			c.Address.Coordinates.Latitude, c.Address.Coordinates.Longitude,
		))
		results = append(results, domain.CompanyDistance{
			Company:      c,
			Distance:     d,
			WithinRadius: d <= c.EffectiveDeliveryRadius(),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	return results
}

// FilterByDeliveryRadius returns the public projection of every company
// that can deliver to the customer location, ascending by distance.
func (s *LocationService) FilterByDeliveryRadius(customer domain.Coordinates, companies []domain.Company) []domain.PublicCompany {
	distances := s.DistancesToCompanies(customer, companies)
	out := make([]domain.PublicCompany, 0, len(distances))
	for _, d := range distances {
		if !d.WithinRadius {
			continue
		}
		out = append(out, d.Company.PublicWithDistance(d.Distance))
	}
	return out
}

// DeliveryOptions lists every active company able to deliver to the
// customer location.
func (s *LocationService) DeliveryOptions(ctx context.Context, customer domain.Coordinates) ([]domain.PublicCompany, error) {
	companies, err := s.companies.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.FilterByDeliveryRadius(customer, companies), nil
}

// UpdateCompanyCoordinates geocodes the company's address and persists
// the result. It is a no-op for companies that already have coordinates,
// and all failures land in the outcome rather than an error: enrichment
// must never fail the operation that triggered it.
func (s *LocationService) UpdateCompanyCoordinates(ctx context.Context, c *domain.Company) EnrichmentOutcome {
	outcome := EnrichmentOutcome{Company: c.Name}

	if c.HasCoordinates() {
		outcome.Status = EnrichmentSkipped
		return outcome
	}

	address := c.Address.Format()
	if address == "" {
		outcome.Status = EnrichmentFailed
		outcome.Reason = "company has no address"
		return outcome
	}

	coords := s.GeocodeAddress(ctx, address)
	if coords == nil {
		outcome.Status = EnrichmentFailed
		outcome.Reason = "geocoding returned no result"
		return outcome
	}

	if err := s.companies.UpdateCoordinates(ctx, c.ID, *coords); err != nil {
		s.logger.Warn("failed to persist coordinates",
			zap.String("company_id", c.ID.String()),
			zap.Error(err))
		outcome.Status = EnrichmentFailed
		outcome.Reason = "failed to persist coordinates"
		return outcome
	}

	c.Address.Coordinates = coords
	outcome.Status = EnrichmentUpdated
	outcome.Coordinates = coords

	s.logger.Info("company coordinates updated",
		zap.String("company_id", c.ID.String()),
		zap.Float64("latitude", coords.Latitude),
		zap.Float64("longitude", coords.Longitude))
	return outcome
}

// BatchUpdateCompanyCoordinates enriches companies strictly one at a
// time with an enforced inter-call delay. External providers rate-limit
// aggressively; running this loop in parallel would degrade geocoding
// for everyone, so the throttle is a correctness requirement.
func (s *LocationService) BatchUpdateCompanyCoordinates(ctx context.Context, companies []domain.Company) []EnrichmentOutcome {
	outcomes := make([]EnrichmentOutcome, 0, len(companies))
	for i := range companies {
		if err := s.throttle.Wait(ctx); err != nil {
			outcomes = append(outcomes, EnrichmentOutcome{
				Company: companies[i].Name,
				Status:  EnrichmentFailed,
				Reason:  "batch cancelled",
			})
			continue
		}
		outcomes = append(outcomes, s.UpdateCompanyCoordinates(ctx, &companies[i]))
	}
	return outcomes
}
