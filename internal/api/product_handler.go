package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/models"
	"github.com/medisupply/product-import/internal/service"
)

// ProductHandler handles catalog product endpoints
type ProductHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(services *service.Services, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		services: services,
		log:      log.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req models.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	product, err := h.services.Product.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// CreateBulk handles POST /products-batch
func (h *ProductHandler) CreateBulk(c *gin.Context) {
	var req models.ProductCreateBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	resp, err := h.services.Product.CreateBulk(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// List handles GET /products?page=&limit=
func (h *ProductHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	list, err := h.services.Product.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.services.Product.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, product)
}
