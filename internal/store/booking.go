package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rentbounce/bouncer/internal/domain"
)

const bookingColumns = `id, company_id, customer_name, customer_email, customer_phone,
	bounce_house, event_date, street, city, state, zip, status, created_at, updated_at`

type BookingStore struct {
	db *pgxpool.Pool
}

func NewBookingStore(db *pgxpool.Pool) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) Create(ctx context.Context, b *domain.Booking) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO bookings
		 (company_id, customer_name, customer_email, customer_phone,
		  bounce_house, event_date, street, city, state, zip, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		b.CompanyID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.BounceHouse, b.EventDate,
		b.DeliveryAddress.Street, b.DeliveryAddress.City,
		b.DeliveryAddress.State, b.DeliveryAddress.Zip, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (s *BookingStore) GetByID(ctx context.Context, id uuid.UUID, companyID uuid.UUID) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := s.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(
		&b.ID, &b.CompanyID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.BounceHouse, &b.EventDate,
		&b.DeliveryAddress.Street, &b.DeliveryAddress.City,
		&b.DeliveryAddress.State, &b.DeliveryAddress.Zip,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BookingStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Booking, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE company_id = $1 ORDER BY event_date`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
			&b.BounceHouse, &b.EventDate,
			&b.DeliveryAddress.Street, &b.DeliveryAddress.City,
			&b.DeliveryAddress.State, &b.DeliveryAddress.Zip,
			&b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, companyID uuid.UUID, status domain.BookingStatus) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE bookings SET status = $3, updated_at = now()
		 WHERE id = $1 AND company_id = $2`,
		id, companyID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
