package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and verifies the bearer tokens that assert a user's
// identity. Tokens carry only the subject id; they are never revoked before
// their natural expiry.
type JWTManager struct {
	secret      []byte
	SessionTTL  time.Duration
	RememberTTL time.Duration
}

type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// NewJWTManager fails on an empty secret rather than issuing tokens nothing
// can verify.
func NewJWTManager(secret string, sessionTTL, rememberTTL time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	return &JWTManager{
		secret:      []byte(secret),
		SessionTTL:  sessionTTL,
		RememberTTL: rememberTTL,
	}, nil
}

// Issue signs a token for userID. remember selects the long-lived TTL.
func (m *JWTManager) Issue(userID string, remember bool) (string, time.Time, error) {
	ttl := m.SessionTTL
	if remember {
		ttl = m.RememberTTL
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Verify parses and validates a token string. Malformed, badly signed and
// expired tokens all fail the same way.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
