package repository

import (
	"context"

	"github.com/ecomarket/ecomarket/internal/domain/model"
)

// ProductRepository describes persistence operations for catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
}
