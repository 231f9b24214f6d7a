package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

// AuthService implements login and bearer-token authentication.
type AuthService struct {
	repo   ports.AdminRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	verify ports.TokenVerifier
	log    zerolog.Logger
}

func NewAuthService(
	repo ports.AdminRepository,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	verifier ports.TokenVerifier,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, verify: verifier, log: log}
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, admin.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(admin.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("admin_id", admin.ID).Msg("admin logged in")
	return &ports.LoginResult{Admin: admin.Sanitized(), Token: token}, nil
}

// Authenticate verifies the token and re-fetches the administrator it names,
// so a deleted administrator is rejected even while the token is unexpired.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Admin, error) {
	id, err := s.verify.Verify(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrTokenInvalid
	}

	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return admin.Sanitized(), nil
}
