package domain

import (
	"context"

	"github.com/google/uuid"
)

type CompanyStore interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetActiveBySubdomain(ctx context.Context, subdomain string) (*Company, error)
	GetActiveByCustomDomain(ctx context.Context, domain string) (*Company, error)
	ListActive(ctx context.Context) ([]Company, error)
	ListActiveMissingCoordinates(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, c *Company) error
	UpdateCoordinates(ctx context.Context, id uuid.UUID, coords Coordinates) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserStore interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID, companyID uuid.UUID) (*Booking, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, companyID uuid.UUID, status BookingStatus) error
}

type WaiverStore interface {
	Create(ctx context.Context, w *Waiver) error
	GetByID(ctx context.Context, id uuid.UUID, companyID uuid.UUID) (*Waiver, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]Waiver, error)
	MarkSigned(ctx context.Context, id uuid.UUID, companyID uuid.UUID, signerName, signerEmail string) error
}
