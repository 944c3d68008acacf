package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/domain/repository"
)

// CatalogUseCase registers and resolves products. Deliberately thin: orders
// need resolvable products with a known seller, nothing more.
type CatalogUseCase struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, users repository.UserRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, users: users}
}

// Register adds a product to the catalog on behalf of the seller.
func (u *CatalogUseCase) Register(ctx context.Context, sellerID int64, product *model.Product) (*model.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, fmt.Errorf("%w: product name required", domainErrors.ErrValidation)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("%w: negative price", domainErrors.ErrValidation)
	}

	seller, err := u.users.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	product.SellerID = seller.ID
	product.SellerName = seller.Name

	return u.products.Create(ctx, product)
}

// Get resolves a single product.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns the catalog, newest first.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}
