// Package auth issues and validates the signed bearer tokens back-office operators present.
package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Scopes granted to operator tokens
const (
	// ScopeLedger allows reading and writing orders, bills and investors
	ScopeLedger = "ledger"
	// ScopePayouts additionally allows paying investors out
	ScopePayouts = "payouts"
)

// MinSecretLength is the shortest accepted HMAC secret
const MinSecretLength = 32

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingOperator  = errors.New("missing operator in claims")
	ErrSecretTooShort   = errors.New("token secret must be at least 32 bytes")
)

// Claims identify an operator and what they may do
type Claims struct {
	jwt.RegisteredClaims
	Operator string   `json:"operator"`
	Scopes   []string `json:"scopes,omitempty"`
}

// HasScope reports whether the token grants scope
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// TokenService signs and verifies HS256 operator tokens
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service; ttl applies to issued tokens
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenService{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for operator
func (s *TokenService) Issue(operator string, scopes ...string) (string, time.Time, error) {
	if operator == "" {
		return "", time.Time{}, ErrMissingOperator
	}
	now := s.now()
	expires := now.Add(s.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   operator,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expires),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Operator: operator,
		Scopes:   scopes,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Validate verifies signature, issuer and lifetime and returns the claims
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Operator == "" {
		return nil, ErrMissingOperator
	}
	return claims, nil
}
