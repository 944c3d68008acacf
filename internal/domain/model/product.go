package model

import "time"

// Product is a catalog entry offered by a seller.
type Product struct {
	ID          int64
	SellerID    int64
	SellerName  string
	Name        string
	Description string
	Price       float64
	Category    string
	EcoRating   float64
	Stock       int
	ForRent     bool
	CreatedAt   time.Time
}
