package ports

import (
	"context"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

// AdminRepository is the credential store.
type AdminRepository interface {
	// FindByEmail matches the email exactly and includes the password hash.
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// FindByID returns the administrator without its password hash.
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	// Create stores a new administrator; duplicates yield domain.ErrAdminExists.
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	// Update persists exactly the changed fields.
	Update(ctx context.Context, id string, changes domain.AdminChanges) (*domain.Admin, error)
	Delete(ctx context.Context, id string) error
}
