package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/medisupply/product-import/internal/models"
	"github.com/medisupply/product-import/internal/repository"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mu          sync.Mutex
	Products    map[string]*models.Product
	CreateError error
	CreateFunc  func(ctx context.Context, product *models.Product) error
	CreateCalls int
}

// Verify interface compliance
var _ repository.ProductRepository = (*MockProductRepository)(nil)

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		Products: make(map[string]*models.Product),
	}
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, product); err != nil {
			return err
		}
	}
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Products[product.ID] = product
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.Products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return product, nil
}

func (m *MockProductRepository) List(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*models.Product, 0, len(m.Products))
	for _, p := range m.Products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].ID < all[j].ID
		}
		return all[i].Name < all[j].Name
	})
	return page(all, offset, limit), nil
}

func (m *MockProductRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Products), nil
}

// MockProviderRepository is a mock implementation of ProviderRepository
type MockProviderRepository struct {
	mu          sync.Mutex
	Providers   map[string]*models.Provider
	CreateError error
	ExistsError error
}

// Verify interface compliance
var _ repository.ProviderRepository = (*MockProviderRepository)(nil)

func NewMockProviderRepository() *MockProviderRepository {
	return &MockProviderRepository{
		Providers: make(map[string]*models.Provider),
	}
}

func (m *MockProviderRepository) Create(ctx context.Context, provider *models.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	for _, p := range m.Providers {
		if p.RIT == provider.RIT || p.Email == provider.Email {
			return repository.ErrDuplicate
		}
	}
	m.Providers[provider.ID] = provider
	return nil
}

func (m *MockProviderRepository) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	provider, ok := m.Providers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return provider, nil
}

func (m *MockProviderRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	_, ok := m.Providers[id]
	return ok, nil
}

func (m *MockProviderRepository) List(ctx context.Context, offset, limit int) ([]*models.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*models.Provider, 0, len(m.Providers))
	for _, p := range m.Providers {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].ID < all[j].ID
		}
		return all[i].Name < all[j].Name
	})
	return page(all, offset, limit), nil
}

func (m *MockProviderRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Providers), nil
}

// NewMockRepositories wires fresh mock repositories together
func NewMockRepositories() (*repository.Repositories, *MockProductRepository, *MockProviderRepository) {
	products := NewMockProductRepository()
	providers := NewMockProviderRepository()
	return &repository.Repositories{Product: products, Provider: providers}, products, providers
}

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
