package service

import (
	"context"
	"sync"
	"time"

	"github.com/rentbounce/bouncer/internal/domain"
	"go.uber.org/zap"
)

const defaultEnricherInterval = 1 * time.Hour

// EnricherService periodically geocodes active companies that are
// missing coordinates. It runs the same sequential, throttled batch the
// admin endpoint uses, so a misconfigured address never blocks anything
// but its own row.
type EnricherService struct {
	companies domain.CompanyStore
	location  *LocationService
	logger    *zap.Logger

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewEnricherService(companies domain.CompanyStore, location *LocationService, logger *zap.Logger) *EnricherService {
	return &EnricherService{
		companies: companies,
		location:  location,
		logger:    logger,
		interval:  defaultEnricherInterval,
		stopCh:    make(chan struct{}),
	}
}

func (s *EnricherService) SetInterval(d time.Duration) {
	s.interval = d
}

// Start runs the enricher on a periodic schedule in a background goroutine.
func (s *EnricherService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("coordinate enricher started", zap.Duration("interval", s.interval))

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
				s.run(ctx)
				cancel()
			case <-s.stopCh:
				s.logger.Info("coordinate enricher stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the enricher.
func (s *EnricherService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *EnricherService) run(ctx context.Context) {
	companies, err := s.companies.ListActiveMissingCoordinates(ctx)
	if err != nil {
		s.logger.Error("enricher failed to list companies", zap.Error(err))
		return
	}
	if len(companies) == 0 {
		return
	}

	outcomes := s.location.BatchUpdateCompanyCoordinates(ctx, companies)

	var updated, failed int
	for _, o := range outcomes {
		switch o.Status {
		case EnrichmentUpdated:
			updated++
		case EnrichmentFailed:
			failed++
		}
	}
	s.logger.Info("enricher pass complete",
		zap.Int("companies", len(companies)),
		zap.Int("updated", updated),
		zap.Int("failed", failed))
}
