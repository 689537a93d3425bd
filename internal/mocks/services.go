package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/models"
	"github.com/medisupply/product-import/internal/service"
)

// MockUploader is a mock implementation of the batch uploader
type MockUploader struct {
	mu         sync.Mutex
	UploadFunc func(ctx context.Context, records []models.ProductCreateRequest) (*models.ProductCreateBulkResponse, error)
	Calls      [][]models.ProductCreateRequest
}

// Verify interface compliance
var _ service.Uploader = (*MockUploader)(nil)

func NewMockUploader() *MockUploader {
	return &MockUploader{}
}

func (m *MockUploader) Upload(ctx context.Context, records []models.ProductCreateRequest) (*models.ProductCreateBulkResponse, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, records)
	m.mu.Unlock()

	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, records)
	}
	return &models.ProductCreateBulkResponse{
		Success:       true,
		RowsTotal:     len(records),
		RowsInserted:  len(records),
		ErrorsDetails: []string{},
	}, nil
}

// CallCount returns how many uploads were made
func (m *MockUploader) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	ImportFunc func(ctx context.Context, filename string, r io.Reader) (*models.ImportReport, error)
	Filenames  []string
	Contents   [][]byte
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{}
}

func (m *MockImportService) Import(ctx context.Context, filename string, r io.Reader) (*models.ImportReport, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.Filenames = append(m.Filenames, filename)
	m.Contents = append(m.Contents, content)

	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, filename, bytes.NewReader(content))
	}
	return &models.ImportReport{
		ID:            "test-import-id",
		Status:        models.ImportStatusCompleted,
		Success:       true,
		ErrorsDetails: []string{},
	}, nil
}

// MockTemplateService is a mock implementation of TemplateService
type MockTemplateService struct {
	XLSXData []byte
	CSVData  []byte
	Err      error
}

// Verify interface compliance
var _ service.TemplateService = (*MockTemplateService)(nil)

func NewMockTemplateService() *MockTemplateService {
	return &MockTemplateService{
		XLSXData: []byte("xlsx-bytes"),
		CSVData:  []byte("name,details\n"),
	}
}

func (m *MockTemplateService) XLSX() ([]byte, error) {
	return m.XLSXData, m.Err
}

func (m *MockTemplateService) CSV() ([]byte, error) {
	return m.CSVData, m.Err
}

// MockProductService is a mock implementation of ProductService
type MockProductService struct {
	CreateFunc     func(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error)
	CreateBulkFunc func(ctx context.Context, req *models.ProductCreateBulkRequest) (*models.ProductCreateBulkResponse, error)
	Products       map[string]*models.Product
	BulkRequests   []*models.ProductCreateBulkRequest
}

// Verify interface compliance
var _ service.ProductService = (*MockProductService)(nil)

func NewMockProductService() *MockProductService {
	return &MockProductService{
		Products: make(map[string]*models.Product),
	}
}

func (m *MockProductService) Create(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	product := &models.Product{
		ID:           "test-product-id",
		Name:         req.Name,
		Details:      req.Details,
		Store:        req.Store,
		Batch:        req.Batch,
		ImageURL:     req.ImageURL,
		DueDate:      req.DueDate,
		Stock:        req.Stock,
		PricePerUnit: req.PricePerUnit,
		ProviderID:   req.ProviderID,
	}
	m.Products[product.ID] = product
	return product, nil
}

func (m *MockProductService) CreateBulk(ctx context.Context, req *models.ProductCreateBulkRequest) (*models.ProductCreateBulkResponse, error) {
	m.BulkRequests = append(m.BulkRequests, req)
	if m.CreateBulkFunc != nil {
		return m.CreateBulkFunc(ctx, req)
	}
	return &models.ProductCreateBulkResponse{
		Success:       true,
		RowsTotal:     len(req.Products),
		RowsInserted:  len(req.Products),
		ErrorsDetails: []string{},
	}, nil
}

func (m *MockProductService) List(ctx context.Context, page, limit int) (*models.ProductList, error) {
	products := make([]*models.Product, 0, len(m.Products))
	for _, p := range m.Products {
		products = append(products, p)
	}
	return &models.ProductList{TotalCount: len(products), Products: products}, nil
}

func (m *MockProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	if p, ok := m.Products[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("product not found")
}

// MockProviderService is a mock implementation of ProviderService
type MockProviderService struct {
	CreateFunc func(ctx context.Context, req *models.ProviderCreateRequest) (*models.Provider, error)
	Providers  map[string]*models.Provider
}

// Verify interface compliance
var _ service.ProviderService = (*MockProviderService)(nil)

func NewMockProviderService() *MockProviderService {
	return &MockProviderService{
		Providers: make(map[string]*models.Provider),
	}
}

func (m *MockProviderService) Create(ctx context.Context, req *models.ProviderCreateRequest) (*models.Provider, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	provider := &models.Provider{
		ID:      "test-provider-id",
		Name:    req.Name,
		RIT:     req.RIT,
		City:    req.City,
		Country: req.Country,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	m.Providers[provider.ID] = provider
	return provider, nil
}

func (m *MockProviderService) List(ctx context.Context, page, limit int) (*models.ProviderList, error) {
	providers := make([]*models.Provider, 0, len(m.Providers))
	for _, p := range m.Providers {
		providers = append(providers, p)
	}
	return &models.ProviderList{TotalCount: len(providers), Providers: providers}, nil
}

func (m *MockProviderService) Get(ctx context.Context, id string) (*models.Provider, error) {
	if p, ok := m.Providers[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("provider not found")
}
