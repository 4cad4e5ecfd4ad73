package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Veldkraal/farm_shop/internal/hash"
	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/repo"
)

const accessTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo           *repo.GormRepo
	JWTSecret      []byte
	AdminAllowList map[string]struct{}
}

type SessionClaims struct {
	ExternalID string
	Email      string
	Name       string
}

func (s *AuthService) isAdminEmail(email string) bool {
	_, ok := s.AdminAllowList[strings.ToLower(email)]
	return ok
}

func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !repo.IsNotFound(err) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	role := models.RoleCustomer
	if s.isAdminEmail(email) {
		role = models.RoleAdmin
	}

	user := &models.User{
		ExternalID:   uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if repo.IsNotFound(err) {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return nil, "", err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.SignAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) SignAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ExternalID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

// ParseSession validates the HMAC token and extracts the identity claims.
func (s *AuthService) ParseSession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: invalid subject claim", ErrUnauthorized)
	}

	sc := &SessionClaims{ExternalID: sub}
	if v, ok := claims["email"].(string); ok {
		sc.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		sc.Name = v
	}
	return sc, nil
}

// ResolveSession idempotently upserts the local user for the session's
// external id, promoting to ADMIN only on an allow-list match.
func (s *AuthService) ResolveSession(ctx context.Context, claims *SessionClaims) (*models.User, error) {
	return s.Repo.ResolveUser(ctx, claims.ExternalID, claims.Email, claims.Name, s.isAdminEmail(claims.Email))
}
