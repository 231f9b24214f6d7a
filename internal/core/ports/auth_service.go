package ports

import (
	"context"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

// LoginResult is returned on successful login.
type LoginResult struct {
	Admin *domain.Admin
	Token string
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Authenticate verifies a bearer token and re-resolves its administrator.
	Authenticate(ctx context.Context, token string) (*domain.Admin, error)
}

// CreateAdminInput carries a new administrator with its plaintext password.
type CreateAdminInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateAdminInput is a partial administrator update; nil fields are untouched.
type UpdateAdminInput struct {
	Name     *string
	Email    *string
	Password *string
}

type AdminService interface {
	Create(ctx context.Context, in CreateAdminInput) (*domain.Admin, error)
	Update(ctx context.Context, id string, in UpdateAdminInput) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Delete(ctx context.Context, id string) error
}
