// Package memory provides process-local implementations of the repository
// ports. They back the STORE=memory mode and the end-to-end tests.
package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

type AdminRepository struct {
	mu     sync.RWMutex
	admins map[string]domain.Admin
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{admins: make(map[string]domain.Admin)}
}

func (r *AdminRepository) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if a.Email == email {
			found := a
			return &found, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *AdminRepository) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return a.Sanitized(), nil
}

func (r *AdminRepository) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.admins {
		if a.Email == admin.Email {
			return nil, domain.ErrAdminExists
		}
	}

	stored := *admin
	stored.ID = primitive.NewObjectID().Hex()
	r.admins[stored.ID] = stored

	created := stored
	return &created, nil
}

func (r *AdminRepository) Update(_ context.Context, id string, changes domain.AdminChanges) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	if changes.Email != nil {
		for otherID, other := range r.admins {
			if otherID != id && other.Email == *changes.Email {
				return nil, domain.ErrAdminExists
			}
		}
	}

	changes.ApplyTo(&a)
	a.UpdatedAt = time.Now().UTC()
	r.admins[id] = a

	updated := a
	return &updated, nil
}

func (r *AdminRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[id]; !ok {
		return domain.ErrAdminNotFound
	}
	delete(r.admins, id)
	return nil
}
