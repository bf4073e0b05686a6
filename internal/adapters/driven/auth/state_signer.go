package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
)

// Ensure StateSigner implements driven.StateSigner
var _ driven.StateSigner = (*StateSigner)(nil)

// stateClaims wraps driven.StateClaims for JWT compatibility.
// The nonce travels as jti and the user as sub.
type stateClaims struct {
	OrgID    string `json:"org"`
	Provider string `json:"prv"`
	jwt.RegisteredClaims
}

// StateSigner signs OAuth state tokens as HS256 JWTs so the callback can
// detect tampering before touching the store.
type StateSigner struct {
	secret []byte
}

// NewStateSigner creates a new state signer with the given secret.
func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{secret: []byte(secret)}
}

// Sign creates a signed state token carrying the claims.
func (s *StateSigner) Sign(claims driven.StateClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	jc := stateClaims{
		OrgID:    claims.OrgID,
		Provider: string(claims.Provider),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.Nonce,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jc)
	return token.SignedString(s.secret)
}

// Verify validates a state token and extracts its claims.
// Tampered, foreign, or expired tokens fail with domain.ErrInvalidState.
func (s *StateSigner) Verify(tokenString string) (*driven.StateClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &stateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidState
	}

	claims, ok := token.Claims.(*stateClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidState
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, domain.ErrInvalidState
	}

	return &driven.StateClaims{
		Nonce:    claims.ID,
		UserID:   claims.Subject,
		OrgID:    claims.OrgID,
		Provider: domain.ProviderType(claims.Provider),
	}, nil
}
