package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veldkraal/farm_shop/internal/transport"
)

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	body := transport.RegisterRequest{Email: "new@example.com", Name: "New", Password: "pw123456"}

	rec := ts.do(t, http.MethodPost, "/api/v1/register", body, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/register", body, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "duplicate email")

	rec = ts.do(t, http.MethodPost, "/api/v1/register", transport.RegisterRequest{Name: "No Email", Password: "pw"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.signIn(t, "known@example.com", "pw123456")

	rec := ts.do(t, http.MethodPost, "/api/v1/login", transport.LoginRequest{Email: "known@example.com", Password: "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/login", transport.LoginRequest{Email: "nobody@example.com", Password: "pw"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint_ExpiresCookie(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	cookie := ts.signIn(t, "bye@example.com", "pw123456")

	rec := ts.do(t, http.MethodPost, "/api/v1/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "accessToken" {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(cookie.Expires), "cookie expired in the past")
}
