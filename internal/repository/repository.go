package repository

import (
	"context"
	"errors"

	"github.com/medisupply/product-import/internal/database"
	"github.com/medisupply/product-import/internal/models"
)

// Sentinel errors returned by repositories. Services translate them to
// application errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("record already exists")
	ErrProviderMissing = errors.New("provider does not exist")
	ErrInvalidValue    = errors.New("value rejected by the database")
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, offset, limit int) ([]*models.Product, error)
	Count(ctx context.Context) (int, error)
}

// ProviderRepository defines the interface for provider data operations
type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Provider, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Product  ProductRepository
	Provider ProviderRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Product:  NewProductRepo(db),
		Provider: NewProviderRepo(db),
	}
}
