package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Veldkraal/farm_shop/internal/config"
	"github.com/Veldkraal/farm_shop/internal/middleware/auth"
	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/repo"
	"github.com/Veldkraal/farm_shop/internal/service"
)

type testServer struct {
	Echo *echo.Echo
	Repo *repo.GormRepo
	Auth *service.AuthService
}

// newTestServer wires the full router over an in-memory database. Kafka and
// Elasticsearch are left nil; the handlers tolerate both being absent.
func newTestServer(t *testing.T, adminEmails ...string) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open in-memory db")
	require.NoError(t, config.Migrate(db), "failed to migrate tables")

	r := repo.New(db)
	allow := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allow[e] = struct{}{}
	}
	authSvc := &service.AuthService{Repo: r, JWTSecret: []byte("test-secret"), AdminAllowList: allow}

	e := echo.New()
	Register(e, &Deps{
		Auth:     &AuthHTTP{Svc: authSvc},
		Cart:     &CartHTTP{Svc: &service.CartService{Repo: r}},
		Address:  &AddressHTTP{Svc: &service.AddressService{Repo: r}},
		Order:    &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		Product:  &ProductHTTP{Svc: &service.CatalogService{Repo: r}},
		Search:   &SearchHTTP{},
		Review:   &ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		Sessions: &auth.Middleware{Auth: authSvc},
	})

	return &testServer{Echo: e, Repo: r, Auth: authSvc}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, req)
	return rec
}

// signIn registers (if needed) and logs in, returning the session cookie.
func (ts *testServer) signIn(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	creds := map[string]string{"email": email, "name": "Test User", "password": password}
	rec := ts.do(t, http.MethodPost, "/api/v1/register", creds, nil)
	require.Contains(t, []int{http.StatusCreated, http.StatusConflict}, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/login", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "accessToken" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no accessToken cookie in login response")
	return nil
}

func (ts *testServer) seedProduct(t *testing.T, name, slug string, priceCents int64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:       name,
		Slug:       slug,
		PriceCents: priceCents,
		Stock:      50,
		Unit:       "per kg",
		Active:     true,
	}
	require.NoError(t, ts.Repo.DB.Create(product).Error)
	return product
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
