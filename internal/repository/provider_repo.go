package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/medisupply/product-import/internal/database"
	"github.com/medisupply/product-import/internal/models"
)

const providerColumns = `id, name, rit, city, country, image_url, email, phone, created_at`

// providerRepo is the concrete implementation of ProviderRepository
type providerRepo struct {
	db *database.DB
}

// NewProviderRepo creates a new provider repository
func NewProviderRepo(db *database.DB) ProviderRepository {
	return &providerRepo{db: db}
}

// Create inserts a new provider
func (r *providerRepo) Create(ctx context.Context, provider *models.Provider) error {
	query := `
		INSERT INTO providers (id, name, rit, city, country, image_url, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		provider.ID, provider.Name, provider.RIT, provider.City, provider.Country,
		provider.ImageURL, provider.Email, provider.Phone, provider.CreatedAt,
	)
	return mapError(err)
}

// GetByID retrieves a provider by ID
func (r *providerRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`

	provider, err := scanProvider(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return provider, nil
}

// Exists checks if a provider exists
func (r *providerRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM providers WHERE id = $1)`, id).Scan(&exists)
	return exists, mapError(err)
}

// List returns a page of providers ordered by name
func (r *providerRepo) List(ctx context.Context, offset, limit int) ([]*models.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers ORDER BY name, id LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := make([]*models.Provider, 0, limit)
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	return providers, rows.Err()
}

// Count returns the total number of providers
func (r *providerRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM providers`).Scan(&count)
	return count, err
}

func scanProvider(s scanner) (*models.Provider, error) {
	var p models.Provider
	var imageURL sql.NullString
	err := s.Scan(&p.ID, &p.Name, &p.RIT, &p.City, &p.Country, &imageURL, &p.Email, &p.Phone, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return &p, nil
}
