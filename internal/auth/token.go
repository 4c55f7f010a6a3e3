package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/airquality-service/internal/domain"
)

// ErrInvalidToken covers bad signatures, malformed input, unexpected signing
// algorithms and expired tokens alike. Callers must not distinguish between
// these cases in responses.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. The TTL defaults to eight hours.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Claims describes the JWT payload. Field names are the wire contract with
// the dashboard client ("perfil" is the role, "hubspot" the tenant id).
type Claims struct {
	UserID   int64       `json:"id"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"perfil"`
	TenantID *int64      `json:"hubspot"`
	jwt.RegisteredClaims
}

// Issue builds and signs a session token for the identity.
func (tm *TokenManager) Issue(identity domain.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UserID:   identity.UserID,
		Email:    identity.Email,
		Role:     identity.Role,
		TenantID: identity.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates the token and reconstructs the caller identity. An empty
// token string is the anonymous state: no identity, no error.
func (tm *TokenManager) Verify(tokenStr string) (*domain.Identity, error) {
	if tokenStr == "" {
		return nil, nil
	}

	// Strict decoding rejects non-canonical base64url segments; without it a
	// token altered only in the unused padding bits of the signature would
	// decode to the same bytes and verify.
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithStrictDecoding())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Role:     claims.Role,
		TenantID: claims.TenantID,
	}, nil
}
