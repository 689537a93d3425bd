package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/models"
	"github.com/medisupply/product-import/internal/repository"
)

// providerService is the concrete implementation of ProviderService
type providerService struct {
	repos    *repository.Repositories
	validate *validator.Validate
	log      zerolog.Logger
}

func newProviderService(repos *repository.Repositories, log zerolog.Logger) *providerService {
	return &providerService{
		repos:    repos,
		validate: newStructValidator(),
		log:      log.With().Str("service", "provider").Logger(),
	}
}

// Create validates and stores a provider
func (s *providerService) Create(ctx context.Context, req *models.ProviderCreateRequest) (*models.Provider, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.RIT = strings.TrimSpace(req.RIT)
	req.City = strings.TrimSpace(req.City)
	req.Country = strings.TrimSpace(req.Country)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	provider := &models.Provider{
		ID:        uuid.New().String(),
		Name:      req.Name,
		RIT:       req.RIT,
		City:      req.City,
		Country:   req.Country,
		ImageURL:  req.ImageURL,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repos.Provider.Create(ctx, provider); err != nil {
		return nil, repositoryError(err)
	}

	s.log.Info().Str("provider_id", provider.ID).Str("rit", provider.RIT).Msg("Provider created")
	return provider, nil
}

// List returns one page of providers ordered by name
func (s *providerService) List(ctx context.Context, page, limit int) (*models.ProviderList, error) {
	page, limit = normalizePage(page, limit)

	total, err := s.repos.Provider.Count(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	providers, err := s.repos.Provider.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &models.ProviderList{TotalCount: total, Providers: providers}, nil
}

// Get returns one provider
func (s *providerService) Get(ctx context.Context, id string) (*models.Provider, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFound("provider not found")
	}

	provider, err := s.repos.Provider.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("provider not found")
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return provider, nil
}
