package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medcollect/pickup-api/internal/api/middleware"
	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

type stubUserService struct {
	listDriversCalled bool
	lastRole          domain.Role
	lastPatch         ports.Patch
	user              *domain.User
}

func (s *stubUserService) List(_ context.Context) ([]*domain.User, error) {
	return []*domain.User{s.user}, nil
}

func (s *stubUserService) ListDrivers(_ context.Context) ([]ports.UserSummary, error) {
	s.listDriversCalled = true
	return []ports.UserSummary{{ID: s.user.ID, Name: s.user.Name}}, nil
}

func (s *stubUserService) Get(_ context.Context, caller *domain.User, _ string) (*domain.User, error) {
	return caller, nil
}

func (s *stubUserService) Update(_ context.Context, role domain.Role, _ string, patch ports.Patch) (*domain.User, error) {
	s.lastRole = role
	s.lastPatch = patch
	return s.user, nil
}

func (s *stubUserService) Delete(_ context.Context, _ string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) DeleteMany(_ context.Context, _ []string) (int64, error) {
	return 1, nil
}

type stubAuthService struct {
	user      *domain.User
	loginErr  error
	lastEmail string
}

func (s *stubAuthService) Register(_ context.Context, _ ports.CreateUserInput) (*domain.User, string, error) {
	return s.user, "fresh-token", nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*domain.User, string, error) {
	s.lastEmail = email
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.user, "fresh-token", nil
}

func (s *stubAuthService) Logout(_ context.Context, _ *domain.User, _ string) error { return nil }
func (s *stubAuthService) LogoutAll(_ context.Context, _ *domain.User) error        { return nil }

func testUser() *domain.User {
	return &domain.User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$08$secret",
		Tokens:       []string{"tok-a", "tok-b"},
	}
}

func newUserContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Login_HidesSessionState(t *testing.T) {
	auth := &stubAuthService{user: testUser()}
	h := NewUserHandler(&stubUserService{user: testUser()}, auth)

	c, rec := newUserContext(t, http.MethodPost, "/users/login", `{"email":"alice@example.com","password":"strongpass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"token":"fresh-token"`) {
		t.Fatalf("token missing from response: %s", body)
	}
	// The hash and the active token list must never serialize.
	if strings.Contains(body, "secret") || strings.Contains(body, "tok-a") {
		t.Fatalf("session state leaked: %s", body)
	}

	var resp struct {
		User map[string]any `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	for _, forbidden := range []string{"password", "passwordHash", "tokens"} {
		if _, ok := resp.User[forbidden]; ok {
			t.Fatalf("field %q must not serialize", forbidden)
		}
	}
}

func TestUserHandler_Login_MissingFields(t *testing.T) {
	h := NewUserHandler(&stubUserService{user: testUser()}, &stubAuthService{user: testUser()})

	c, _ := newUserContext(t, http.MethodPost, "/users/login", `{"email":"alice@example.com"}`)
	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Create_ValidatesBeforeService(t *testing.T) {
	h := NewUserHandler(&stubUserService{user: testUser()}, &stubAuthService{user: testUser()})

	// Password below the minimum length never reaches the service.
	c, _ := newUserContext(t, http.MethodPost, "/users",
		`{"name":"Bob","cpf":123,"birthday":"1990-01-01T00:00:00Z","email":"bob@example.com","password":"short"}`)
	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_List_DriversProjection(t *testing.T) {
	users := &stubUserService{user: testUser()}
	h := NewUserHandler(users, &stubAuthService{user: testUser()})

	c, rec := newUserContext(t, http.MethodGet, "/users?drivers=true", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !users.listDriversCalled {
		t.Fatalf("expected the drivers projection to be used")
	}
	if body := rec.Body.String(); !strings.Contains(body, `"name":"Alice"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestUserHandler_Update_PassesCallerRole(t *testing.T) {
	users := &stubUserService{user: testUser()}
	h := NewUserHandler(users, &stubAuthService{user: testUser()})

	c, _ := newUserContext(t, http.MethodPatch, "/users/user-1", `{"phone":123}`)
	c.SetParamNames("id")
	c.SetParamValues("user-1")
	c.Set(middleware.ContextUser, &domain.User{ID: "caller", Administrator: false})

	if err := h.Update(c); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if users.lastRole != domain.RoleDriver {
		t.Fatalf("expected driver role, got %s", users.lastRole)
	}
	if len(users.lastPatch) != 1 {
		t.Fatalf("expected 1 patch field, got %d", len(users.lastPatch))
	}
}

func TestUserHandler_Update_EmptyBody(t *testing.T) {
	users := &stubUserService{user: testUser()}
	h := NewUserHandler(users, &stubAuthService{user: testUser()})

	c, rec := newUserContext(t, http.MethodPatch, "/users/user-1", "")
	c.SetParamNames("id")
	c.SetParamValues("user-1")
	c.Set(middleware.ContextUser, &domain.User{ID: "caller"})

	// An empty body is a valid no-op patch.
	if err := h.Update(c); err != nil {
		t.Fatalf("empty-body update failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(users.lastPatch) != 0 {
		t.Fatalf("expected empty patch, got %v", users.lastPatch)
	}
}

func TestUserHandler_Logout_RequiresContext(t *testing.T) {
	h := NewUserHandler(&stubUserService{user: testUser()}, &stubAuthService{user: testUser()})

	c, _ := newUserContext(t, http.MethodPost, "/users/logout", "")
	err := h.Logout(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %v", err)
	}
}

func TestUserHandler_DeleteMany_RequiresIDs(t *testing.T) {
	h := NewUserHandler(&stubUserService{user: testUser()}, &stubAuthService{user: testUser()})

	c, _ := newUserContext(t, http.MethodDelete, "/users/many", `{"ids":[]}`)
	err := h.DeleteMany(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty ids, got %v", err)
	}
}
