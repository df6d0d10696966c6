package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rentbounce/bouncer/internal/domain"
)

var ErrSignerRequired = errors.New("signer name and email are required")

type WaiverService struct {
	store    domain.WaiverStore
	bookings domain.BookingStore
}

func NewWaiverService(store domain.WaiverStore, bookings domain.BookingStore) *WaiverService {
	return &WaiverService{store: store, bookings: bookings}
}

// CreateForBooking issues an unsigned waiver for an existing booking.
func (s *WaiverService) CreateForBooking(ctx context.Context, companyID, bookingID uuid.UUID) (*domain.Waiver, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID, companyID); err != nil {
		return nil, err
	}
	w := &domain.Waiver{
		CompanyID: companyID,
		BookingID: bookingID,
	}
	if err := s.store.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WaiverService) GetByID(ctx context.Context, id uuid.UUID, companyID uuid.UUID) (*domain.Waiver, error) {
	return s.store.GetByID(ctx, id, companyID)
}

func (s *WaiverService) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Waiver, error) {
	return s.store.ListByBooking(ctx, bookingID)
}

func (s *WaiverService) Sign(ctx context.Context, id uuid.UUID, companyID uuid.UUID, signerName, signerEmail string) error {
	if strings.TrimSpace(signerName) == "" || strings.TrimSpace(signerEmail) == "" {
		return ErrSignerRequired
	}
	return s.store.MarkSigned(ctx, id, companyID, signerName, signerEmail)
}
