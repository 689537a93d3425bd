package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/metrics"
	"github.com/medisupply/product-import/internal/models"
	"github.com/medisupply/product-import/internal/repository"
)

// Pagination defaults for list endpoints
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// productService is the concrete implementation of ProductService
type productService struct {
	repos    *repository.Repositories
	validate *validator.Validate
	log      zerolog.Logger
}

// newProductService creates a new ProductService
func newProductService(repos *repository.Repositories, log zerolog.Logger) *productService {
	return &productService{
		repos:    repos,
		validate: newStructValidator(),
		log:      log.With().Str("service", "product").Logger(),
	}
}

// Create validates and stores one product
func (s *productService) Create(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error) {
	product, err := s.create(ctx, req)
	metrics.RecordProductCreate(metrics.SourceSingle, err)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", product.ID).
		Str("provider_id", product.ProviderID).
		Msg("Product created")

	return product, nil
}

// CreateBulk creates every product independently. A failed product is
// recorded in the response and does not stop the others.
func (s *productService) CreateBulk(ctx context.Context, req *models.ProductCreateBulkRequest) (*models.ProductCreateBulkResponse, error) {
	resp := &models.ProductCreateBulkResponse{
		RowsTotal:     len(req.Products),
		ErrorsDetails: []string{},
	}

	for i := range req.Products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := req.Products[i]
		_, err := s.create(ctx, &p)
		metrics.RecordProductCreate(metrics.SourceBatch, err)
		if err != nil {
			resp.ErrorsDetails = append(resp.ErrorsDetails, bulkErrorDetail(p.Name, err))
			continue
		}
		resp.RowsInserted++
	}

	resp.Errors = resp.RowsTotal - resp.RowsInserted
	resp.Success = resp.Errors == 0

	s.log.Info().
		Int("rows_total", resp.RowsTotal).
		Int("rows_inserted", resp.RowsInserted).
		Int("errors", resp.Errors).
		Msg("Product batch processed")

	return resp, nil
}

func (s *productService) create(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error) {
	normalizeProductRequest(req)

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if _, err := uuid.Parse(req.ProviderID); err != nil {
		return nil, apperrors.Unprocessable("provider_id is not a valid UUID")
	}

	exists, err := s.repos.Provider.Exists(ctx, req.ProviderID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if !exists {
		return nil, apperrors.Unprocessable(fmt.Sprintf("provider %s not found", req.ProviderID))
	}

	product := &models.Product{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Details:      req.Details,
		Store:        req.Store,
		Batch:        req.Batch,
		ImageURL:     req.ImageURL,
		DueDate:      req.DueDate,
		Stock:        req.Stock,
		PricePerUnit: req.PricePerUnit,
		ProviderID:   req.ProviderID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, repositoryError(err)
	}

	return product, nil
}

// List returns one page of products ordered by name
func (s *productService) List(ctx context.Context, page, limit int) (*models.ProductList, error) {
	page, limit = normalizePage(page, limit)

	total, err := s.repos.Product.Count(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	products, err := s.repos.Product.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &models.ProductList{TotalCount: total, Products: products}, nil
}

// Get returns one product
func (s *productService) Get(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFound("product not found")
	}

	product, err := s.repos.Product.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("product not found")
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return product, nil
}

func normalizeProductRequest(req *models.ProductCreateRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Details = strings.TrimSpace(req.Details)
	req.Store = strings.TrimSpace(req.Store)
	req.Batch = strings.TrimSpace(req.Batch)
	req.DueDate = strings.TrimSpace(req.DueDate)
	req.ProviderID = strings.TrimSpace(req.ProviderID)
	if req.ImageURL != nil {
		trimmed := strings.TrimSpace(*req.ImageURL)
		if trimmed == "" {
			req.ImageURL = nil
		} else {
			req.ImageURL = &trimmed
		}
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// repositoryError maps repository sentinels to application errors
func repositoryError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProviderMissing):
		return apperrors.Unprocessable("provider not found")
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.Conflict("a record with the same unique value already exists")
	case errors.Is(err, repository.ErrInvalidValue):
		return apperrors.Unprocessable(err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("record not found")
	default:
		return apperrors.DatabaseError(err)
	}
}

// bulkErrorDetail describes a failed product. Server-side failures are
// reported as unexpected so they stand apart from rejected input.
func bulkErrorDetail(name string, err error) string {
	if appErr, ok := apperrors.GetAppError(err); ok && appErr.StatusCode < 500 {
		return fmt.Sprintf("Error for product '%s': %s", name, appErr.Message)
	}
	return fmt.Sprintf("Unexpected error for product '%s': %s", name, errorMessage(err))
}

// errorMessage returns the user-facing part of an error
func errorMessage(err error) string {
	if appErr, ok := apperrors.GetAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
