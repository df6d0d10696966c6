package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rentbounce/bouncer/internal/domain"
)

const companyColumns = `id, name, subdomain, custom_domain, active,
	street, city, state, zip, latitude, longitude,
	delivery_radius, delivery_fee, logo_url, primary_color, waiver_text,
	created_at, updated_at`

type CompanyStore struct {
	db *pgxpool.Pool
}

func NewCompanyStore(db *pgxpool.Pool) *CompanyStore {
	return &CompanyStore{db: db}
}

func (s *CompanyStore) Create(ctx context.Context, c *domain.Company) error {
	var lat, lon *float64
	if c.Address.Coordinates != nil {
		lat = &c.Address.Coordinates.Latitude
		lon = &c.Address.Coordinates.Longitude
	}
	return s.db.QueryRow(ctx,
		`INSERT INTO companies
		 (name, subdomain, custom_domain, active, street, city, state, zip,
		  latitude, longitude, delivery_radius, delivery_fee, logo_url,
		  primary_color, waiver_text)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Subdomain, c.CustomDomain, c.Active,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.Zip,
		lat, lon, c.DeliveryRadius, c.DeliveryFee, c.LogoURL,
		c.PrimaryColor, c.WaiverText,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (s *CompanyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

func (s *CompanyStore) GetActiveBySubdomain(ctx context.Context, subdomain string) (*domain.Company, error) {
	return s.getOne(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE subdomain = $1 AND active = TRUE`,
		subdomain)
}

func (s *CompanyStore) GetActiveByCustomDomain(ctx context.Context, customDomain string) (*domain.Company, error) {
	return s.getOne(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE custom_domain = $1 AND active = TRUE`,
		customDomain)
}

func (s *CompanyStore) ListActive(ctx context.Context) ([]domain.Company, error) {
	return s.list(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE active = TRUE ORDER BY created_at`)
}

func (s *CompanyStore) ListActiveMissingCoordinates(ctx context.Context) ([]domain.Company, error) {
	return s.list(ctx,
		`SELECT `+companyColumns+` FROM companies
		 WHERE active = TRUE AND (latitude IS NULL OR longitude IS NULL)
		 ORDER BY created_at`)
}

func (s *CompanyStore) Update(ctx context.Context, c *domain.Company) error {
	var lat, lon *float64
	if c.Address.Coordinates != nil {
		lat = &c.Address.Coordinates.Latitude
		lon = &c.Address.Coordinates.Longitude
	}
	tag, err := s.db.Exec(ctx,
		`UPDATE companies SET
		 name = $2, subdomain = $3, custom_domain = NULLIF($4, ''), active = $5,
		 street = $6, city = $7, state = $8, zip = $9,
		 latitude = $10, longitude = $11, delivery_radius = $12,
		 delivery_fee = $13, logo_url = $14, primary_color = $15,
		 waiver_text = $16, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Name, c.Subdomain, c.CustomDomain, c.Active,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.Zip,
		lat, lon, c.DeliveryRadius, c.DeliveryFee, c.LogoURL,
		c.PrimaryColor, c.WaiverText)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CompanyStore) UpdateCoordinates(ctx context.Context, id uuid.UUID, coords domain.Coordinates) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE companies SET latitude = $2, longitude = $3, updated_at = now() WHERE id = $1`,
		id, coords.Latitude, coords.Longitude)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CompanyStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CompanyStore) getOne(ctx context.Context, query string, args ...any) (*domain.Company, error) {
	c, err := scanCompany(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CompanyStore) list(ctx context.Context, query string, args ...any) ([]domain.Company, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	c := &domain.Company{}
	var customDomain *string
	var lat, lon *float64
	err := row.Scan(
		&c.ID, &c.Name, &c.Subdomain, &customDomain, &c.Active,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.Zip,
		&lat, &lon, &c.DeliveryRadius, &c.DeliveryFee, &c.LogoURL,
		&c.PrimaryColor, &c.WaiverText, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customDomain != nil {
		c.CustomDomain = *customDomain
	}
	if lat != nil && lon != nil {
		c.Address.Coordinates = &domain.Coordinates{Latitude: *lat, Longitude: *lon}
	}
	return c, nil
}
