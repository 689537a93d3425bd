package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/models"
	"github.com/medisupply/product-import/internal/service"
)

// ProviderHandler handles provider registry endpoints
type ProviderHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProviderHandler creates a new ProviderHandler
func NewProviderHandler(services *service.Services, log zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{
		services: services,
		log:      log.With().Str("handler", "provider").Logger(),
	}
}

// Create handles POST /providers
func (h *ProviderHandler) Create(c *gin.Context) {
	var req models.ProviderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	provider, err := h.services.Provider.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, provider)
}

// List handles GET /providers
func (h *ProviderHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	list, err := h.services.Provider.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get handles GET /providers/:id
func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.services.Provider.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, provider)
}
