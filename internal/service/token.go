package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/car-registry/backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the HS256 bearer tokens that assert a
// credential's identity. Secret and TTL are fixed at construction.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	// now is swapped out by tests to simulate expiry.
	now func() time.Time
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	ttlMS, err := strconv.ParseInt(cfg.TokenTTLMS, 10, 64)
	if err != nil || ttlMS <= 0 {
		return nil, fmt.Errorf("%w: TOKEN_TTL_MS must be a positive integer", ErrMisconfigured)
	}

	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(ttlMS) * time.Millisecond,
		now:    time.Now,
	}, nil
}

// Issue builds a token asserting subject, stamped with the current time and
// expiring TTL later.
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate reports whether tokenStr carries a good signature, has not
// expired, and asserts expectedSubject. It fails closed on any parse or
// verification problem.
func (s *TokenService) Validate(tokenStr, expectedSubject string) bool {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc,
		jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return false
	}
	return claims.Subject == expectedSubject
}

// ExtractSubject decodes the subject claim after checking the signature but
// without checking expiry; validity is established separately. An
// unparsable or mis-signed token is an explicit error, never an empty
// subject.
func (s *TokenService) ExtractSubject(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenStr, claims, s.keyFunc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !token.Valid {
		return "", ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}
	return claims.Subject, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnauthorized
	}
	return s.secret, nil
}
