package models

import (
	"time"
)

// Provider supplies products to the catalog
type Provider struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	RIT       string    `json:"rit" db:"rit"`
	City      string    `json:"city" db:"city"`
	Country   string    `json:"country" db:"country"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProviderCreateRequest is the body of POST /providers.
type ProviderCreateRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	RIT      string  `json:"rit" validate:"required,min=1,max=50"`
	City     string  `json:"city" validate:"required,min=1,max=100"`
	Country  string  `json:"country" validate:"required,min=1,max=100"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,max=255"`
	Email    string  `json:"email" validate:"required,email,max=120"`
	Phone    string  `json:"phone" validate:"required,number,min=9,max=15"`
}

// ProviderList is the response of GET /providers.
type ProviderList struct {
	TotalCount int         `json:"total_count"`
	Providers  []*Provider `json:"providers"`
}
