package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/gameinventory/internal/domain"
)

// tokenCacheSize bounds the number of decoded tokens kept in memory
const tokenCacheSize = 1024

// Decoder verifies bearer tokens and extracts the caller's identity.
// Decoded tokens are cached: claims are immutable for a given token
// string, so re-parsing hot tokens on every request is wasted work.
type Decoder struct {
	secret []byte
	cache  *expirable.LRU[string, domain.UserInfo]
}

// NewDecoder creates a Decoder verifying HS256 signatures with the given
// secret. cacheTTL bounds how long a decoded token is reused; it should not
// exceed the issuer's token lifetime.
func NewDecoder(secret string, cacheTTL time.Duration) *Decoder {
	return &Decoder{
		secret: []byte(secret),
		cache:  expirable.NewLRU[string, domain.UserInfo](tokenCacheSize, nil, cacheTTL),
	}
}

// Decode verifies the token and returns the identity carried in its
// claims. Returns domain.ErrUnauthorized when the token is invalid or the
// required claims are absent or empty.
func (d *Decoder) Decode(tokenString string) (domain.UserInfo, error) {
	if info, ok := d.cache.Get(tokenString); ok {
		return info, nil
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return d.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.UserInfo{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.UserInfo{}, fmt.Errorf("%w: malformed claims", domain.ErrUnauthorized)
	}

	info, err := userInfoFromClaims(claims)
	if err != nil {
		return domain.UserInfo{}, err
	}

	d.cache.Add(tokenString, info)
	return info, nil
}

// userInfoFromClaims extracts user_id (or sub) and role from token claims
func userInfoFromClaims(claims jwt.MapClaims) (domain.UserInfo, error) {
	userID, ok := numericClaim(claims, "user_id")
	if !ok {
		userID, ok = numericClaim(claims, "sub")
	}
	if !ok || userID <= 0 {
		return domain.UserInfo{}, fmt.Errorf("%w: missing user_id claim", domain.ErrUnauthorized)
	}

	role, _ := claims["role"].(string)
	if role == "" {
		return domain.UserInfo{}, fmt.Errorf("%w: missing role claim", domain.ErrUnauthorized)
	}

	return domain.UserInfo{UserID: userID, Role: role}, nil
}

// numericClaim reads a claim that may be encoded as a JSON number or a
// numeric string
func numericClaim(claims jwt.MapClaims, key string) (int, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int(v), true
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}
