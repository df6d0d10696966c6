package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rentbounce/bouncer/internal/domain"
)

type WaiverStore struct {
	db *pgxpool.Pool
}

func NewWaiverStore(db *pgxpool.Pool) *WaiverStore {
	return &WaiverStore{db: db}
}

func (s *WaiverStore) Create(ctx context.Context, w *domain.Waiver) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO waivers (company_id, booking_id, signer_name, signer_email, signed, signed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		w.CompanyID, w.BookingID, w.SignerName, w.SignerEmail, w.Signed, w.SignedAt,
	).Scan(&w.ID, &w.CreatedAt)
}

func (s *WaiverStore) GetByID(ctx context.Context, id uuid.UUID, companyID uuid.UUID) (*domain.Waiver, error) {
	w := &domain.Waiver{}
	err := s.db.QueryRow(ctx,
		`SELECT id, company_id, booking_id, signer_name, signer_email, signed, signed_at, created_at
		 FROM waivers WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&w.ID, &w.CompanyID, &w.BookingID, &w.SignerName, &w.SignerEmail,
		&w.Signed, &w.SignedAt, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *WaiverStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Waiver, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, company_id, booking_id, signer_name, signer_email, signed, signed_at, created_at
		 FROM waivers WHERE booking_id = $1 ORDER BY created_at`,
		bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waivers []domain.Waiver
	for rows.Next() {
		var w domain.Waiver
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.BookingID, &w.SignerName,
			&w.SignerEmail, &w.Signed, &w.SignedAt, &w.CreatedAt); err != nil {
			return nil, err
		}
		waivers = append(waivers, w)
	}
	return waivers, rows.Err()
}

func (s *WaiverStore) MarkSigned(ctx context.Context, id uuid.UUID, companyID uuid.UUID, signerName, signerEmail string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE waivers SET signed = TRUE, signed_at = now(),
		 signer_name = $3, signer_email = $4
		 WHERE id = $1 AND company_id = $2 AND signed = FALSE`,
		id, companyID, signerName, signerEmail)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
