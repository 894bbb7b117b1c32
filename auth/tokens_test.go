package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, 24*time.Hour)
	resp, err := m.Issue(models.User{ID: 42, Username: "ada"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	id, err := m.ParseAccess(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = m.ParseRefresh(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestParseRejects(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", time.Hour, 24*time.Hour).WithClock(func() time.Time { return issuedAt })
	resp, err := m.Issue(models.User{ID: 1, Username: "ada"})
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "typ": "access", "iss": issuer}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		parse   func(string) (int64, error)
		token   string
		expired bool
	}{
		{"refresh used as access", m.ParseAccess, resp.RefreshToken, false},
		{"access used as refresh", m.ParseRefresh, resp.AccessToken, false},
		{"wrong secret", NewTokenManager("other", time.Hour, time.Hour).WithClock(m.now).ParseAccess, resp.AccessToken, false},
		{"garbage", m.ParseAccess, "not.a.token", false},
		{"alg none", m.ParseAccess, noneToken, false},
		{"expired", m.WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) }).ParseAccess, resp.AccessToken, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parse(tt.token)
			require.Error(t, err)
			assert.Equal(t, tt.expired, errs.IsExpiredTokenError(err))
			assert.Equal(t, 401, errs.StatusCode(err))
		})
	}
}

func TestPasswords(t *testing.T) {
	Cost = bcrypt.MinCost
	t.Cleanup(func() { Cost = bcrypt.DefaultCost })

	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
	assert.False(t, CheckPassword("not-a-hash", "hunter22"))
}
