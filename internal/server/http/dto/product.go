package dto

import "time"

// ProductRequest describes a seller's catalog registration payload.
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	EcoRating   float64 `json:"eco_rating,omitempty"`
	Stock       int     `json:"stock,omitempty"`
	ForRent     bool    `json:"for_rent,omitempty"`
}

// ProductResponse describes a catalog entry.
type ProductResponse struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"seller_id"`
	SellerName  string    `json:"seller_name"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	EcoRating   float64   `json:"eco_rating,omitempty"`
	Stock       int       `json:"stock"`
	ForRent     bool      `json:"for_rent"`
	CreatedAt   time.Time `json:"created_at"`
}
