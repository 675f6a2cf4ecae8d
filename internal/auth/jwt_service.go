package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultAccessTokenTTL is used when no TTL is configured.
const DefaultAccessTokenTTL = 15 * time.Minute

var (
	// ErrInvalidToken is returned for malformed, forged or wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned once the token's exp has been reached.
	ErrTokenExpired = errors.New("token expired")
)

// Claims represents access token claims: sub, iat and exp.
type Claims struct {
	jwt.RegisteredClaims
}

// PrincipalID returns the subject as a principal id.
func (c *Claims) PrincipalID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

// Clock returns the current time.
type Clock func() time.Time

// JWTService handles access token generation and validation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    Clock
	parser *jwt.Parser
}

// NewJWTService creates a new JWT service signing HS256 tokens with secret.
func NewJWTService(secret string, ttl time.Duration, now Clock) *JWTService {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		// exp is checked against the injected clock, not the parser's wall clock.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// TTL returns the lifetime of issued access tokens.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// IssueAccessToken signs a token for principalID valid for the configured TTL.
func (s *JWTService) IssueAccessToken(principalID uuid.UUID) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates tokenString and returns its claims.
// A token is accepted strictly before its exp.
func (s *JWTService) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyExpiresAt(s.now(), true) {
		return nil, ErrTokenExpired
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
