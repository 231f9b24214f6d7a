package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
	"github.com/scholarfolio/portfolio-api/internal/core/service"
	"github.com/scholarfolio/portfolio-api/internal/infrastructure/db/memory"
	"github.com/scholarfolio/portfolio-api/internal/pkg/security"
)

const (
	testEmail    = "professor@university.edu"
	testPassword = "Admin@000"
)

type testQueue struct {
	mu  sync.Mutex
	got []ports.ContactMessage
}

func (q *testQueue) Enqueue(msg ports.ContactMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.got = append(q.got, msg)
	return nil
}

type testServer struct {
	e         *echo.Echo
	adminRepo *memory.AdminRepository
	admins    *service.AdminService
	admin     *domain.Admin
	queue     *testQueue
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := zerolog.Nop()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := security.NewJWTManager("e2e-secret")
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	adminRepo := memory.NewAdminRepository()
	admins := service.NewAdminService(adminRepo, hasher, log)
	admin, err := admins.Create(context.Background(), ports.CreateAdminInput{
		Name:     "Professor",
		Email:    testEmail,
		Password: testPassword,
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	q := &testQueue{}
	e := NewRouter(Deps{
		Log:      log,
		Auth:     service.NewAuthService(adminRepo, hasher, tokens, tokens, log),
		Profiles: service.NewProfileService(memory.NewProfileRepository(), nil, log),
		Papers: service.NewResourceService[*domain.Paper, domain.PaperPatch](
			domain.KindPaper, memory.NewResourceRepository(domain.KindPaper, domain.ComparePapers), domain.NewPaper, log),
		Courses: service.NewResourceService[*domain.Course, domain.CoursePatch](
			domain.KindCourse, memory.NewResourceRepository[*domain.Course](domain.KindCourse, nil), domain.NewCourse, log),
		Blogs: service.NewResourceService[*domain.Blog, domain.BlogPatch](
			domain.KindBlog, memory.NewResourceRepository[*domain.Blog](domain.KindBlog, nil), domain.NewBlog, log),
		Videos: service.NewResourceService[*domain.Video, domain.VideoPatch](
			domain.KindVideo, memory.NewResourceRepository[*domain.Video](domain.KindVideo, nil), domain.NewVideo, log),
		Contact:  q,
		Registry: prometheus.NewRegistry(),
	})

	return &testServer{e: e, adminRepo: adminRepo, admins: admins, admin: admin, queue: q}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, map[string]any, string) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec.Code, resp, rec.Body.String()
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	code, resp, raw := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"`+testEmail+`","password":"`+testPassword+`"}`)
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", code, raw)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("login: empty token: %s", raw)
	}
	return token
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	token := s.login(t)
	if token == "" {
		t.Fatal("expected token")
	}

	for _, body := range []string{
		`{"email":"` + testEmail + `","password":"wrong"}`,
		`{"email":"nobody@university.edu","password":"` + testPassword + `"}`,
	} {
		code, resp, _ := s.do(t, http.MethodPost, "/api/auth/login", "", body)
		if code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", code)
		}
		if resp["message"] != "invalid email or password" {
			t.Fatalf("unexpected message %v", resp["message"])
		}
	}
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)

	code, resp, _ := s.do(t, http.MethodGet, "/api/admin/dashboard", "", "")
	if code != http.StatusUnauthorized || resp["message"] != "not authorized, no token" {
		t.Fatalf("no token: got %d %v", code, resp)
	}

	code, resp, _ = s.do(t, http.MethodGet, "/api/admin/dashboard", "garbage", "")
	if code != http.StatusUnauthorized || resp["message"] != "not authorized, token failed" {
		t.Fatalf("bad token: got %d %v", code, resp)
	}

	code, resp, raw := s.do(t, http.MethodGet, "/api/admin/dashboard", s.login(t), "")
	if code != http.StatusOK {
		t.Fatalf("valid token: got %d %s", code, raw)
	}
	admin, ok := resp["admin"].(map[string]any)
	if !ok || admin["email"] != testEmail {
		t.Fatalf("unexpected admin %v", resp["admin"])
	}
	if strings.Contains(raw, "password") || strings.Contains(raw, "$2a$") {
		t.Fatalf("password leaked: %s", raw)
	}
}

func TestDeletedAdminTokenRejected(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	if err := s.admins.Delete(context.Background(), s.admin.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	code, resp, _ := s.do(t, http.MethodGet, "/api/admin/dashboard", token, "")
	if code != http.StatusUnauthorized || resp["message"] != "admin not found" {
		t.Fatalf("expected 401 admin not found, got %d %v", code, resp)
	}
}

func TestProfileLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, resp, _ := s.do(t, http.MethodGet, "/api/profile", "", "")
	if code != http.StatusNotFound || resp["message"] != "profile not created yet" {
		t.Fatalf("expected 404, got %d %v", code, resp)
	}

	code, _, _ = s.do(t, http.MethodPut, "/api/profile", "", `{"name":"A"}`)
	if code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated PUT: expected 401, got %d", code)
	}

	code, resp, _ = s.do(t, http.MethodPut, "/api/profile", token, `{"bio":"no name"}`)
	if code != http.StatusBadRequest || resp["message"] != "name is required" {
		t.Fatalf("expected 400 name is required, got %d %v", code, resp)
	}

	code, resp, _ = s.do(t, http.MethodPut, "/api/profile", token, `{"name":"A","contact":{"email":"a@x.com","phone":"123"}}`)
	if code != http.StatusCreated || resp["name"] != "A" {
		t.Fatalf("expected 201, got %d %v", code, resp)
	}

	code, resp, _ = s.do(t, http.MethodPut, "/api/profile", token, `{"contact":{"phone":"456"}}`)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	contact, _ := resp["contact"].(map[string]any)
	if contact["email"] != "a@x.com" || contact["phone"] != "456" {
		t.Fatalf("contact not merged: %v", contact)
	}

	code, resp, _ = s.do(t, http.MethodGet, "/api/profile", "", "")
	if code != http.StatusOK || resp["name"] != "A" {
		t.Fatalf("expected 200 with profile, got %d %v", code, resp)
	}
}

func TestProfileConcurrentCreate(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	const writers = 8
	codes := make([]int, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i], _, _ = s.do(t, http.MethodPut, "/api/profile", token, `{"name":"X"}`)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, c := range codes {
		switch c {
		case http.StatusCreated:
			created++
		case http.StatusOK:
		default:
			t.Fatalf("unexpected status %d", c)
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one 201, got %d", created)
	}
}

func TestResourceCRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, _, _ := s.do(t, http.MethodPost, "/api/papers", "", `{"title":"P"}`)
	if code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: expected 401, got %d", code)
	}

	code, resp, _ := s.do(t, http.MethodPost, "/api/papers", token, `{"journal":"J"}`)
	if code != http.StatusBadRequest || resp["message"] != "title is required" {
		t.Fatalf("expected 400 title is required, got %d %v", code, resp)
	}

	code, resp, raw := s.do(t, http.MethodPost, "/api/papers", token, `{"title":"On Proofs","authors":["A. Author"],"year":2021}`)
	if code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %s", code, raw)
	}
	id, _ := resp["id"].(string)
	if id == "" {
		t.Fatalf("create: missing id in %s", raw)
	}

	code, resp, _ = s.do(t, http.MethodGet, "/api/papers/"+id, "", "")
	if code != http.StatusOK || resp["title"] != "On Proofs" {
		t.Fatalf("get: got %d %v", code, resp)
	}

	code, resp, _ = s.do(t, http.MethodPut, "/api/papers/"+id, token, `{"journal":"Annals"}`)
	if code != http.StatusOK || resp["journal"] != "Annals" || resp["title"] != "On Proofs" {
		t.Fatalf("update: got %d %v", code, resp)
	}

	code, resp, _ = s.do(t, http.MethodDelete, "/api/papers/"+id, token, "")
	if code != http.StatusOK || resp["message"] != "paper removed" {
		t.Fatalf("delete: got %d %v", code, resp)
	}

	code, resp, _ = s.do(t, http.MethodGet, "/api/papers/"+id, "", "")
	if code != http.StatusNotFound || resp["message"] != "paper not found" {
		t.Fatalf("get after delete: got %d %v", code, resp)
	}
}

func TestBlogDraftsOnlyForAdmins(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, _, raw := s.do(t, http.MethodPost, "/api/blogs", token, `{"title":"Draft","content":"wip","published":false}`)
	if code != http.StatusCreated {
		t.Fatalf("create: got %d %s", code, raw)
	}

	_, _, raw = s.do(t, http.MethodGet, "/api/blogs", "", "")
	if strings.TrimSpace(raw) != "[]" {
		t.Fatalf("public list must hide drafts, got %s", raw)
	}

	code, _, _ = s.do(t, http.MethodGet, "/api/blogs/admin", "", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("admin list without token: expected 401, got %d", code)
	}

	code, _, raw = s.do(t, http.MethodGet, "/api/blogs/admin", token, "")
	if code != http.StatusOK || !strings.Contains(raw, `"slug":"draft"`) {
		t.Fatalf("admin list: got %d %s", code, raw)
	}
}

func TestContact(t *testing.T) {
	s := newTestServer(t)

	code, resp, _ := s.do(t, http.MethodPost, "/api/contact", "", `{"name":"Ana","email":"ana@example.com"}`)
	if code != http.StatusBadRequest || resp["message"] != "all fields are required" {
		t.Fatalf("expected 400, got %d %v", code, resp)
	}

	code, resp, _ = s.do(t, http.MethodPost, "/api/contact", "", `{"name":"Ana","email":"ana@example.com","message":"Hi"}`)
	if code != http.StatusAccepted || resp["message"] != "message received" {
		t.Fatalf("expected 202, got %d %v", code, resp)
	}
	if len(s.queue.got) != 1 {
		t.Fatalf("expected one queued message, got %d", len(s.queue.got))
	}
}

func TestHealthChecksAndMetrics(t *testing.T) {
	s := newTestServer(t)

	_, _, raw := s.do(t, http.MethodGet, "/", "", "")
	if raw != "API is running..." {
		t.Fatalf("unexpected root body %q", raw)
	}

	code, resp, _ := s.do(t, http.MethodGet, "/health/ready", "", "")
	if code != http.StatusOK || resp["status"] != "ok" {
		t.Fatalf("readiness without dependencies: got %d %v", code, resp)
	}

	s.do(t, http.MethodGet, "/api/papers", "", "")
	code, _, raw = s.do(t, http.MethodGet, "/metrics", "", "")
	if code != http.StatusOK || !strings.Contains(raw, "portfolio_http_requests_total") {
		t.Fatalf("metrics: got %d", code)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	code, resp, _ := s.do(t, http.MethodGet, "/api/nope", "", "")
	if code != http.StatusNotFound || resp["message"] == nil {
		t.Fatalf("expected 404 envelope, got %d %v", code, resp)
	}
}

func TestProtectedRoutesAcceptAnyResolvedAdmin(t *testing.T) {
	s := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Other@000"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := s.adminRepo.Create(context.Background(), &domain.Admin{
		Name:         "Imported",
		Email:        "imported@university.edu",
		PasswordHash: string(hash),
		Role:         "editor",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	code, resp, raw := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"imported@university.edu","password":"Other@000"}`)
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", code, raw)
	}
	token, _ := resp["token"].(string)

	if code, _, raw := s.do(t, http.MethodGet, "/api/admin/dashboard", token, ""); code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d: %s", code, raw)
	}
	if code, _, raw := s.do(t, http.MethodPut, "/api/profile", token, `{"name":"A"}`); code != http.StatusCreated {
		t.Fatalf("profile: expected 201, got %d: %s", code, raw)
	}
}
