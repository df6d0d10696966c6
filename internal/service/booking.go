package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rentbounce/bouncer/internal/domain"
)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrBounceHouseRequired  = errors.New("bounce house is required")
	ErrEventDateRequired    = errors.New("event date is required")
	ErrInvalidStatus        = errors.New("invalid booking status")
)

type BookingService struct {
	store domain.BookingStore
}

func NewBookingService(store domain.BookingStore) *BookingService {
	return &BookingService{store: store}
}

func (s *BookingService) Create(ctx context.Context, b *domain.Booking) error {
	if strings.TrimSpace(b.CustomerName) == "" {
		return ErrCustomerNameRequired
	}
	if strings.TrimSpace(b.BounceHouse) == "" {
		return ErrBounceHouseRequired
	}
	if b.EventDate.IsZero() {
		return ErrEventDateRequired
	}
	if b.Status == "" {
		b.Status = domain.BookingPending
	}
	if !domain.ValidBookingStatus(string(b.Status)) {
		return ErrInvalidStatus
	}
	return s.store.Create(ctx, b)
}

func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID, companyID uuid.UUID) (*domain.Booking, error) {
	return s.store.GetByID(ctx, id, companyID)
}

func (s *BookingService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Booking, error) {
	return s.store.ListByCompany(ctx, companyID)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, companyID uuid.UUID, status string) error {
	if !domain.ValidBookingStatus(status) {
		return ErrInvalidStatus
	}
	return s.store.UpdateStatus(ctx, id, companyID, domain.BookingStatus(status))
}
