package models

import (
	"time"
)

// ProductCreateRequest is the payload accepted by the catalog for one product.
// The importer produces these from validated rows. The JSON names, including
// price_per_unite, are the catalog wire contract.
type ProductCreateRequest struct {
	Name         string  `json:"name" validate:"required,min=3,max=100"`
	Details      string  `json:"details" validate:"required,min=10,max=500"`
	Store        string  `json:"store" validate:"required,min=3,max=100"`
	Batch        string  `json:"batch" validate:"required,min=5,max=50"`
	ImageURL     *string `json:"image_url,omitempty" validate:"omitempty,min=10,max=300"`
	DueDate      string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	Stock        int     `json:"stock" validate:"gt=0"`
	PricePerUnit float64 `json:"price_per_unite" validate:"gt=0"`
	ProviderID   string  `json:"provider_id" validate:"required,len=36"`
}

// ProductCreateBulkRequest is the body of POST /products-batch.
type ProductCreateBulkRequest struct {
	Products []ProductCreateRequest `json:"products"`
}

// ProductCreateBulkResponse is the catalog's answer to a batch upload.
type ProductCreateBulkResponse struct {
	Success       bool     `json:"success"`
	RowsTotal     int      `json:"rows_total"`
	RowsInserted  int      `json:"rows_inserted"`
	Errors        int      `json:"errors"`
	ErrorsDetails []string `json:"errors_details"`
}

// Product represents a product in the catalog
type Product struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Details      string    `json:"details" db:"details"`
	Store        string    `json:"store" db:"store"`
	Batch        string    `json:"batch" db:"batch"`
	ImageURL     *string   `json:"image_url" db:"image_url"`
	DueDate      string    `json:"due_date" db:"due_date"`
	Stock        int       `json:"stock" db:"stock"`
	PricePerUnit float64   `json:"price_per_unite" db:"price_per_unit"`
	ProviderID   string    `json:"provider_id" db:"provider_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ProductList is the response of GET /products.
type ProductList struct {
	TotalCount int        `json:"total_count"`
	Products   []*Product `json:"products"`
}
