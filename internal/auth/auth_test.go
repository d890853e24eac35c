package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_RoundTrip(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	token, err := tg.GenerateToken(5, []string{RoleUser, RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, roles, err := tg.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 5, userID)
	assert.Equal(t, []string{RoleUser, RoleAdmin}, roles)
}

func TestTokenGenerator_WrongSecret(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)
	other := NewTokenGenerator("other-secret", time.Hour)

	token, err := tg.GenerateToken(5, []string{RoleUser})
	require.NoError(t, err)

	_, _, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGenerator_Expired(t *testing.T) {
	tg := NewTokenGenerator("test-secret", -time.Minute)

	token, err := tg.GenerateToken(5, []string{RoleUser})
	require.NoError(t, err)

	_, _, err = tg.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGenerator_Garbage(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	_, _, err := tg.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestIdentity_IsAdmin(t *testing.T) {
	admin := &Identity{UserID: 1, Roles: []string{RoleUser, RoleAdmin}}
	user := &Identity{UserID: 2, Roles: []string{RoleUser}}

	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())
}

func TestIdentity_CanAccess(t *testing.T) {
	admin := &Identity{UserID: 1, Roles: []string{RoleUser, RoleAdmin}}
	user := &Identity{UserID: 2, Roles: []string{RoleUser}}

	// admins may act on any resource
	assert.True(t, admin.CanAccess(2))
	assert.True(t, admin.CanAccess(1))

	// other callers only on their own
	assert.True(t, user.CanAccess(2))
	assert.False(t, user.CanAccess(1))
}

func TestIdentityMiddleware(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)
	token, err := tg.GenerateToken(5, []string{RoleUser})
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		cookie       string
		wantIdentity bool
		wantUserID   int
	}{
		{
			name:         "bearer header",
			header:       "Bearer " + token,
			wantIdentity: true,
			wantUserID:   5,
		},
		{
			name:         "cookie",
			cookie:       token,
			wantIdentity: true,
			wantUserID:   5,
		},
		{
			name:         "no credentials",
			wantIdentity: false,
		},
		{
			name:         "invalid token treated like no credentials",
			header:       "Bearer invalid",
			wantIdentity: false,
		},
		{
			name:         "malformed header treated like no credentials",
			header:       token,
			wantIdentity: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ident *Identity
			var ok bool
			handler := IdentityMiddleware(tg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ident, ok = IdentityFrom(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantIdentity, ok)
			if tt.wantIdentity {
				assert.Equal(t, tt.wantUserID, ident.UserID)
			}
		})
	}
}
