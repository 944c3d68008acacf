package dto

import (
	"time"

	"github.com/ecomarket/ecomarket/internal/domain/model"
)

// RegisterRequest describes the signup payload.
type RegisterRequest struct {
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Password       string                `json:"password"`
	Phone          string                `json:"phone,omitempty"`
	Address        string                `json:"address,omitempty"`
	Role           string                `json:"role,omitempty"`
	PaymentDetails *model.PaymentDetails `json:"payment_details,omitempty"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user (no password hash).
type UserResponse struct {
	ID             int64                 `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone,omitempty"`
	Address        string                `json:"address,omitempty"`
	Role           string                `json:"role"`
	PaymentDetails *model.PaymentDetails `json:"payment_details,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// AuthResponse carries a session token together with the user record.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
