package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/api"
	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/mocks"
	"github.com/medisupply/product-import/internal/models"
	"github.com/medisupply/product-import/internal/service"
)

type fakeDB struct {
	err error
}

func (f fakeDB) HealthCheck(ctx context.Context) error {
	return f.err
}

func setupCatalogRouter(db api.HealthChecker) (*gin.Engine, *mocks.MockProductService, *mocks.MockProviderService) {
	gin.SetMode(gin.TestMode)

	mockProduct := mocks.NewMockProductService()
	mockProvider := mocks.NewMockProviderService()

	services := &service.Services{
		Product:  mockProduct,
		Provider: mockProvider,
	}

	return api.NewCatalogRouter(services, db, zerolog.Nop()), mockProduct, mockProvider
}

const productJSON = `{
	"name": "Sterile Gauze",
	"details": "Sterile gauze pads, 10x10 cm",
	"store": "Bogota Central",
	"batch": "LOT-2025-01",
	"due_date": "2026-06-30",
	"stock": 10,
	"price_per_unite": 2.5,
	"provider_id": "550e8400-e29b-41d4-a716-446655440000"
}`

func TestCatalogHealth(t *testing.T) {
	tests := []struct {
		name           string
		db             api.HealthChecker
		expectedStatus int
		expectedHealth string
	}{
		{"database up", fakeDB{}, http.StatusOK, "healthy"},
		{"database down", fakeDB{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := setupCatalogRouter(tt.db)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			response := decodeBody(t, w)
			if response["status"] != tt.expectedHealth {
				t.Errorf("Expected %s, got %v", tt.expectedHealth, response["status"])
			}
			if response["service"] != api.CatalogServiceName {
				t.Errorf("Expected service name, got %v", response["service"])
			}
		})
	}
}

func TestCreateProduct(t *testing.T) {
	router, mockProduct, _ := setupCatalogRouter(nil)

	req := httptest.NewRequest("POST", "/products", bytes.NewBufferString(productJSON))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	stored := mockProduct.Products["test-product-id"]
	if stored == nil {
		t.Fatal("Product was not passed to the service")
	}
	if stored.PricePerUnit != 2.5 {
		t.Errorf("Expected price_per_unite to bind, got %v", stored.PricePerUnit)
	}
}

func TestCreateProduct_Errors(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{"malformed json", `{"name": `, nil, http.StatusBadRequest},
		{"provider missing", productJSON, apperrors.Unprocessable("provider not found"), http.StatusUnprocessableEntity},
		{"database failure", productJSON, apperrors.DatabaseError(errors.New("timeout")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockProduct, _ := setupCatalogRouter(nil)
			if tt.serviceErr != nil {
				mockProduct.CreateFunc = func(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, error) {
					return nil, tt.serviceErr
				}
			}

			req := httptest.NewRequest("POST", "/products", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateProductsBatch(t *testing.T) {
	router, mockProduct, _ := setupCatalogRouter(nil)
	mockProduct.CreateBulkFunc = func(ctx context.Context, req *models.ProductCreateBulkRequest) (*models.ProductCreateBulkResponse, error) {
		return &models.ProductCreateBulkResponse{
			Success:       false,
			RowsTotal:     2,
			RowsInserted:  1,
			Errors:        1,
			ErrorsDetails: []string{"Error for product 'Sterile Gauze': provider not found"},
		}, nil
	}

	body := `{"products": [` + productJSON + `,` + productJSON + `]}`
	req := httptest.NewRequest("POST", "/products-batch", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	if len(mockProduct.BulkRequests) != 1 || len(mockProduct.BulkRequests[0].Products) != 2 {
		t.Fatalf("Expected one batch of 2 products, got %v", mockProduct.BulkRequests)
	}

	response := decodeBody(t, w)
	if response["success"] != false || response["rows_inserted"] != float64(1) || response["errors"] != float64(1) {
		t.Errorf("Unexpected response: %v", response)
	}
}

func TestGetProduct(t *testing.T) {
	router, mockProduct, _ := setupCatalogRouter(nil)
	mockProduct.Products["p-1"] = &models.Product{ID: "p-1", Name: "Sterile Gauze"}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/products/p-1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/products/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if response := decodeBody(t, w); response["code"] != string(apperrors.ErrCodeNotFound) {
		t.Errorf("Expected NOT_FOUND code, got %v", response["code"])
	}
}

func TestListProducts(t *testing.T) {
	router, mockProduct, _ := setupCatalogRouter(nil)
	mockProduct.Products["p-1"] = &models.Product{ID: "p-1", Name: "Sterile Gauze"}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/products?page=1&limit=10", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if response := decodeBody(t, w); response["total_count"] != float64(1) {
		t.Errorf("Expected total_count 1, got %v", response["total_count"])
	}
}

func TestProviders(t *testing.T) {
	router, _, mockProvider := setupCatalogRouter(nil)

	body := `{"name":"Acme Medical","rit":"900123456","city":"Bogota","country":"Colombia","email":"sales@acme.example","phone":"3001234567"}`
	req := httptest.NewRequest("POST", "/providers", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	if _, ok := mockProvider.Providers["test-provider-id"]; !ok {
		t.Error("Provider was not passed to the service")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/providers", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/providers/test-provider-id", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}
