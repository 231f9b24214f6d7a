package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
	"github.com/scholarfolio/portfolio-api/internal/infrastructure/db/memory"
	"github.com/scholarfolio/portfolio-api/internal/pkg/security"
)

const (
	seedEmail    = "professor@university.edu"
	seedPassword = "Admin@000"
)

type authFixture struct {
	repo   *memory.AdminRepository
	admins *AdminService
	auth   *AuthService
	seeded *domain.Admin
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	repo := memory.NewAdminRepository()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := security.NewJWTManager("test-secret")
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	admins := NewAdminService(repo, hasher, zerolog.Nop())
	seeded, err := admins.Create(context.Background(), ports.CreateAdminInput{
		Name:     "Professor",
		Email:    seedEmail,
		Password: seedPassword,
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	return &authFixture{
		repo:   repo,
		admins: admins,
		auth:   NewAuthService(repo, hasher, tokens, tokens, zerolog.Nop()),
		seeded: seeded,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.auth.Login(context.Background(), seedEmail, seedPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a token")
	}
	if res.Admin.ID != f.seeded.ID || res.Admin.Email != seedEmail {
		t.Fatalf("unexpected admin %+v", res.Admin)
	}
	if res.Admin.PasswordHash != "" {
		t.Fatal("login result must not carry the password hash")
	}

	admin, err := f.auth.Authenticate(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if admin.ID != f.seeded.ID {
		t.Fatalf("expected %s, got %s", f.seeded.ID, admin.ID)
	}
}

func TestAuthService_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	cases := []struct{ email, password string }{
		{seedEmail, "wrong"},
		{"nobody@university.edu", seedPassword},
		{"PROFESSOR@university.edu", seedPassword},
		{"", ""},
	}
	for _, tc := range cases {
		_, err := f.auth.Login(context.Background(), tc.email, tc.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
}

func TestAuthService_Authenticate_GarbageToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Authenticate(context.Background(), "not-a-token")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_Authenticate_DeletedAdmin(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.auth.Login(context.Background(), seedEmail, seedPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := f.admins.Delete(context.Background(), f.seeded.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = f.auth.Authenticate(context.Background(), res.Token)
	if !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

type failingAdminRepo struct {
	ports.AdminRepository
	err error
}

func (r failingAdminRepo) FindByEmail(context.Context, string) (*domain.Admin, error) {
	return nil, r.err
}

func TestAuthService_Login_StoreFailureIsNotACredentialError(t *testing.T) {
	boom := errors.New("connection reset")
	tokens, _ := security.NewJWTManager("test-secret")
	auth := NewAuthService(failingAdminRepo{err: boom}, security.NewBcryptHasher(bcrypt.MinCost), tokens, tokens, zerolog.Nop())

	_, err := auth.Login(context.Background(), seedEmail, seedPassword)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatal("store failure must not be reported as bad credentials")
	}
}
