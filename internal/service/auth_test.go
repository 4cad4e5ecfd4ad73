package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veldkraal/farm_shop/internal/models"
)

func newAuthService(t *testing.T, adminEmails ...string) *AuthService {
	t.Helper()

	allow := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allow[e] = struct{}{}
	}
	return &AuthService{
		Repo:           newTestRepo(t),
		JWTSecret:      []byte("test-secret"),
		AdminAllowList: allow,
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Koos@Example.COM", "Koos", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "koos@example.com", user.Email, "email is lowercased")
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEmpty(t, user.ExternalID)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	_, err = svc.Register(ctx, "koos@example.com", "Koos", "hunter22")
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(ctx, "", "Nobody", "pw")
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register(ctx, "nobody@example.com", "Nobody", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestRegister_AdminAllowList(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, "owner@farm.example")

	user, err := svc.Register(context.Background(), "OWNER@farm.example", "Owner", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "login@example.com", "Login", "correct-horse")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "login@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "login@example.com", user.Email)

	_, _, err = svc.Login(ctx, "login@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = svc.Login(ctx, "ghost@example.com", "whatever")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestParseSession(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "session@example.com", "Sessie", "pw123456")
	require.NoError(t, err)

	token, err := svc.SignAccessToken(registered)
	require.NoError(t, err)

	claims, err := svc.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ExternalID, claims.ExternalID)
	assert.Equal(t, "session@example.com", claims.Email)
	assert.Equal(t, "Sessie", claims.Name)

	_, err = svc.ParseSession("not-a-token")
	require.ErrorIs(t, err, ErrUnauthorized)

	// A token signed with a different key must be rejected.
	other := &AuthService{Repo: svc.Repo, JWTSecret: []byte("other-secret")}
	forged, err := other.SignAccessToken(registered)
	require.NoError(t, err)
	_, err = svc.ParseSession(forged)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveSession_UpsertAndPromotion(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t, "promoted@example.com")
	ctx := context.Background()

	claims := &SessionClaims{ExternalID: "ext-123", Email: "visitor@example.com", Name: "Visitor"}

	first, err := svc.ResolveSession(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, first.Role)

	// Resolving the same session again must not create a second row.
	second, err := svc.ResolveSession(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// An allow-listed email promotes the existing user; promotion is one-way.
	claims.Email = "promoted@example.com"
	promoted, err := svc.ResolveSession(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, first.ID, promoted.ID)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	claims.Email = "visitor@example.com"
	still, err := svc.ResolveSession(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, still.Role, "admin role is never demoted")
}
