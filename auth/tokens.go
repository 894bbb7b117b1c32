// Package auth issues and verifies the bearer tokens handed out by the
// backend and hashes user passwords.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

const (
	issuer = "notebook"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the JWT payload of both token kinds.
type Claims struct {
	Type     string `json:"typ"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs HS256 access and refresh tokens for users.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock returns a copy of m that reads time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

// Issue signs a fresh access/refresh pair for user.
func (m *TokenManager) Issue(user models.User) (models.AuthResponse, error) {
	access, err := m.sign(user, TokenTypeAccess, m.accessTTL)
	if err != nil {
		return models.AuthResponse{}, err
	}
	refresh, err := m.sign(user, TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(m.accessTTL / time.Second),
	}, nil
}

// ParseAccess verifies an access token and returns the user id it was issued for.
func (m *TokenManager) ParseAccess(token string) (int64, error) {
	return m.parse(token, TokenTypeAccess)
}

// ParseRefresh verifies a refresh token and returns the user id it was issued for.
func (m *TokenManager) ParseRefresh(token string) (int64, error) {
	return m.parse(token, TokenTypeRefresh)
}

func (m *TokenManager) sign(user models.User, typ string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Type:     typ,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

func (m *TokenManager) parse(token, typ string) (int64, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errs.NewExpiredTokenError()
		}
		return 0, errs.NewInvalidTokenError()
	}
	if claims.Type != typ {
		return 0, errs.NewInvalidTokenError()
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidTokenError()
	}
	return userID, nil
}
