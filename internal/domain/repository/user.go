package repository

import (
	"context"

	"github.com/ecomarket/ecomarket/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdatePaymentDetails(ctx context.Context, id int64, details *model.PaymentDetails) error
	Count(ctx context.Context) (int64, error)
}
