package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

// AdminService manages administrator records. It is the only writer of
// password hashes: a password is hashed right before persistence, and only
// when the change actually carries a password.
type AdminService struct {
	repo   ports.AdminRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
	now    func() time.Time
}

func NewAdminService(repo ports.AdminRepository, hasher ports.PasswordHasher, log zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, hasher: hasher, log: log, now: time.Now}
}

func (s *AdminService) Create(ctx context.Context, in ports.CreateAdminInput) (*domain.Admin, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.Invalid("name, email and password are required")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create admin: hash password: %w", err)
	}

	now := storeTime(s.now)
	created, err := s.repo.Create(ctx, &domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("admin_id", created.ID).Str("email", created.Email).Msg("admin created")
	return created.Sanitized(), nil
}

// Update applies a partial change. The stored hash is recomputed only when
// in.Password is set; rehashing an existing hash would lock the admin out.
func (s *AdminService) Update(ctx context.Context, id string, in ports.UpdateAdminInput) (*domain.Admin, error) {
	var changes domain.AdminChanges

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name is required")
		}
		changes.Name = &name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, domain.Invalid("email is required")
		}
		changes.Email = &email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.Invalid("password is required")
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update admin: hash password: %w", err)
		}
		changes.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("admin_id", id).
		Bool("password_changed", changes.PasswordHash != nil).
		Msg("admin updated")
	return updated.Sanitized(), nil
}

func (s *AdminService) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return admin.Sanitized(), nil
}

func (s *AdminService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("admin_id", id).Msg("admin deleted")
	return nil
}
