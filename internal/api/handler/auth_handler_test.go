package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.Admin, error) {
	return nil, errors.New("not implemented")
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "professor@university.edu" || password != "Admin@000" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Admin: &domain.Admin{ID: "a1", Name: "Prof", Email: email, Role: domain.RoleAdmin},
				Token: "signed",
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"professor@university.edu","password":"Admin@000"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	if resp["id"] != "a1" || resp["name"] != "Prof" || resp["email"] != "professor@university.edu" || resp["token"] != "signed" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatal("password must never be returned")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"x@y.z","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_BadPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":`)
	var he *echo.HTTPError
	if err := h.Login(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Dashboard(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(http.MethodGet, "/api/admin/dashboard", "")
	admin := &domain.Admin{ID: "a1", Name: "Prof", Email: "p@u.edu", PasswordHash: "$2a$hash", Role: domain.RoleAdmin}
	c.SetRequest(c.Request().WithContext(domain.WithPrincipal(c.Request().Context(), admin)))

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Welcome to Admin Dashboard" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	got, ok := resp["admin"].(map[string]any)
	if !ok || got["id"] != "a1" {
		t.Fatalf("unexpected admin: %+v", resp["admin"])
	}
	if strings.Contains(rec.Body.String(), "$2a$hash") {
		t.Fatal("password hash leaked")
	}
}

func TestAuthHandler_Dashboard_NoPrincipal(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodGet, "/api/admin/dashboard", "")
	var he *echo.HTTPError
	if err := h.Dashboard(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Login_EmptyFieldsReachService(t *testing.T) {
	called := false
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			called = true
			if email != "" || password != "" {
				t.Fatalf("unexpected args: %q %q", email, password)
			}
			return nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", `{}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected the generic credentials error, got %v", err)
	}
	if !called {
		t.Fatal("empty fields must not be rejected before the credential check")
	}
}
