package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, token string) (*domain.Admin, error)
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.Admin, error) {
	return s.authenticateFn(ctx, token)
}

func runAuth(t *testing.T, header string, svc ports.AuthService) (bool, *domain.Admin, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		called bool
		got    *domain.Admin
	)
	h := Auth(svc)(func(c echo.Context) error {
		called = true
		got, _ = domain.PrincipalFrom(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	return called, got, err
}

func assertUnauthorized(t *testing.T, err error, wantMsg string) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
	if he.Message != wantMsg {
		t.Fatalf("expected %q, got %v", wantMsg, he.Message)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc := &stubAuthService{authenticateFn: func(_ context.Context, token string) (*domain.Admin, error) {
		if token != "good" {
			t.Fatalf("unexpected token %q", token)
		}
		return &domain.Admin{ID: "a1", Name: "Prof", Role: domain.RoleAdmin}, nil
	}}

	called, admin, err := runAuth(t, "Bearer good", svc)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if admin == nil || admin.ID != "a1" {
		t.Fatalf("principal not attached, got %+v", admin)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	svc := &stubAuthService{authenticateFn: func(context.Context, string) (*domain.Admin, error) {
		t.Fatal("Authenticate must not be called without a token")
		return nil, nil
	}}

	called, _, err := runAuth(t, "", svc)
	assertUnauthorized(t, err, MsgNoToken)
	if called {
		t.Fatal("next must not run")
	}
}

func TestAuthMiddleware_SchemeMustMatchExactly(t *testing.T) {
	svc := &stubAuthService{authenticateFn: func(context.Context, string) (*domain.Admin, error) {
		t.Fatal("Authenticate must not be called for a malformed header")
		return nil, nil
	}}

	for _, header := range []string{"bearer good", "Token good", "Bearergood", "Bearer "} {
		_, _, err := runAuth(t, header, svc)
		assertUnauthorized(t, err, MsgNoToken)
	}
}

func TestAuthMiddleware_TokenFailed(t *testing.T) {
	svc := &stubAuthService{authenticateFn: func(context.Context, string) (*domain.Admin, error) {
		return nil, domain.ErrTokenInvalid
	}}

	called, _, err := runAuth(t, "Bearer garbage", svc)
	assertUnauthorized(t, err, MsgTokenFailed)
	if called {
		t.Fatal("next must not run")
	}
}

func TestAuthMiddleware_AdminGone(t *testing.T) {
	svc := &stubAuthService{authenticateFn: func(context.Context, string) (*domain.Admin, error) {
		return nil, domain.ErrAdminNotFound
	}}

	_, _, err := runAuth(t, "Bearer orphan", svc)
	assertUnauthorized(t, err, MsgAdminNotFound)
}

func TestAuthMiddleware_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("store down")
	svc := &stubAuthService{authenticateFn: func(context.Context, string) (*domain.Admin, error) {
		return nil, boom
	}}

	_, _, err := runAuth(t, "Bearer good", svc)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
