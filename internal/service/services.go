package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/models"
	"github.com/medisupply/product-import/internal/repository"
	"github.com/medisupply/product-import/internal/validation"
)

// ImportService defines the interface for product file imports
type ImportService interface {
	Import(ctx context.Context, filename string, r io.Reader) (*models.ImportReport, error)
}

// TemplateService defines the interface for the downloadable import template
type TemplateService interface {
	XLSX() ([]byte, error)
	CSV() ([]byte, error)
}

// ProductService defines the interface for catalog product operations
type ProductService interface {
	Create(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error)
	CreateBulk(ctx context.Context, req *models.ProductCreateBulkRequest) (*models.ProductCreateBulkResponse, error)
	List(ctx context.Context, page, limit int) (*models.ProductList, error)
	Get(ctx context.Context, id string) (*models.Product, error)
}

// ProviderService defines the interface for provider registry operations
type ProviderService interface {
	Create(ctx context.Context, req *models.ProviderCreateRequest) (*models.Provider, error)
	List(ctx context.Context, page, limit int) (*models.ProviderList, error)
	Get(ctx context.Context, id string) (*models.Provider, error)
}

// Uploader sends a validated batch to the catalog
type Uploader interface {
	Upload(ctx context.Context, records []models.ProductCreateRequest) (*models.ProductCreateBulkResponse, error)
}

// Services holds all service interfaces. The importer binary fills Import and
// Template; the catalog binary fills Product and Provider.
type Services struct {
	Import   ImportService
	Template TemplateService
	Product  ProductService
	Provider ProviderService
}

// NewImportServices creates the services behind the importer API
func NewImportServices(uploader Uploader, log zerolog.Logger) *Services {
	return &Services{
		Import:   newImportService(validation.NewValidator(), uploader, log),
		Template: newTemplateService(log),
	}
}

// NewCatalogServices creates the services behind the catalog API
func NewCatalogServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Product:  newProductService(repos, log),
		Provider: newProviderService(repos, log),
	}
}
