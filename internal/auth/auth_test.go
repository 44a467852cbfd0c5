package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/gameinventory/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestDecode(t *testing.T) {
	decoder := NewDecoder(testSecret, time.Minute)

	tests := []struct {
		name    string
		claims  jwt.MapClaims
		want    domain.UserInfo
		wantErr bool
	}{
		{
			name:   "valid admin token",
			claims: jwt.MapClaims{"user_id": float64(1), "role": "admin"},
			want:   domain.UserInfo{UserID: 1, Role: domain.RoleAdmin},
		},
		{
			name:   "valid user token",
			claims: jwt.MapClaims{"user_id": float64(42), "role": "user"},
			want:   domain.UserInfo{UserID: 42, Role: domain.RoleUser},
		},
		{
			name:   "sub claim fallback",
			claims: jwt.MapClaims{"sub": "42", "role": "user"},
			want:   domain.UserInfo{UserID: 42, Role: domain.RoleUser},
		},
		{
			name:   "numeric string user_id",
			claims: jwt.MapClaims{"user_id": "7", "role": "user"},
			want:   domain.UserInfo{UserID: 7, Role: domain.RoleUser},
		},
		{
			name:    "missing role",
			claims:  jwt.MapClaims{"user_id": float64(42)},
			wantErr: true,
		},
		{
			name:    "missing user_id",
			claims:  jwt.MapClaims{"role": "user"},
			wantErr: true,
		},
		{
			name:    "non-positive user_id",
			claims:  jwt.MapClaims{"user_id": float64(0), "role": "user"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := decoder.Decode(signToken(t, testSecret, tt.claims))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, info)
		})
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	decoder := NewDecoder(testSecret, time.Minute)
	token := signToken(t, "other-secret", jwt.MapClaims{"user_id": float64(1), "role": "admin"})

	_, err := decoder.Decode(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDecode_Garbage(t *testing.T) {
	decoder := NewDecoder(testSecret, time.Minute)

	_, err := decoder.Decode("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDecode_CachesResult(t *testing.T) {
	decoder := NewDecoder(testSecret, time.Minute)
	token := signToken(t, testSecret, jwt.MapClaims{"user_id": float64(42), "role": "user"})

	first, err := decoder.Decode(token)
	require.NoError(t, err)

	// Second decode is served from the LRU
	_, cached := decoder.cache.Get(token)
	assert.True(t, cached)

	second, err := decoder.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMiddleware(t *testing.T) {
	decoder := NewDecoder(testSecret, time.Minute)
	validToken := signToken(t, testSecret, jwt.MapClaims{"user_id": float64(42), "role": "user"})

	var gotInfo domain.UserInfo
	var handlerCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		gotInfo, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := Middleware(decoder)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"no header", "", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, false},
		{"empty token", "Bearer ", http.StatusUnauthorized, false},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized, false},
		{"valid token", "Bearer " + validToken, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}

	assert.Equal(t, domain.UserInfo{UserID: 42, Role: domain.RoleUser}, gotInfo)
}
