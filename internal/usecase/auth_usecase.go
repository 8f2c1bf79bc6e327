// Package usecase contains the application-specific business rules and the
// contracts the delivery layer depends on.
package usecase

import (
	"context"

	"authgate/internal/domain/entity"
)

// TokenTypeBearer is the token-type label returned with every issued token.
const TokenTypeBearer = "bearer"

// --- Input DTOs ---

// SignupInput defines the data required to register a new user.
type SignupInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// SignupOutput returns the newly created user's public identity. The password
// hash is deliberately absent.
type SignupOutput struct {
	User *entity.User
}

// LoginOutput returns the issued bearer token.
type LoginOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthUsecase defines the authentication operations exposed to the delivery
// layer.
type AuthUsecase interface {
	// Signup registers a new user. Fails with ErrInvalidInput on malformed
	// data and ErrDuplicateCredential when the username or email is taken.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// Login verifies credentials and issues a bearer token. Unknown username
	// and wrong password both fail with the same ErrInvalidCredentials.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
