package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/medisupply/product-import/internal/database"
	"github.com/medisupply/product-import/internal/models"
)

const productColumns = `id, name, details, store, batch, image_url,
	to_char(due_date, 'YYYY-MM-DD'), stock, price_per_unit, provider_id, created_at`

// productRepo is the concrete implementation of ProductRepository
type productRepo struct {
	db *database.DB
}

// NewProductRepo creates a new product repository
func NewProductRepo(db *database.DB) ProductRepository {
	return &productRepo{db: db}
}

// Create inserts a new product
func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, details, store, batch, image_url, due_date, stock, price_per_unit, provider_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Details, product.Store, product.Batch,
		product.ImageURL, product.DueDate, product.Stock, product.PricePerUnit,
		product.ProviderID, product.CreatedAt,
	)
	return mapError(err)
}

// GetByID retrieves a product by ID
func (r *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// List returns a page of products ordered by name
func (r *productRepo) List(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name, id LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*models.Product, 0, limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// Count returns the total number of products
func (r *productRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*models.Product, error) {
	var p models.Product
	var imageURL sql.NullString
	err := s.Scan(
		&p.ID, &p.Name, &p.Details, &p.Store, &p.Batch, &imageURL,
		&p.DueDate, &p.Stock, &p.PricePerUnit, &p.ProviderID, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return &p, nil
}
