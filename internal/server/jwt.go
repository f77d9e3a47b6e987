package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/student-profile/internal/config"
	"github.com/jonathan/student-profile/internal/server/middleware"
)

// tokenIssuer is stamped into every session token and required on validation.
const tokenIssuer = "student-profile"

// Claims is the payload of a session token.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// GetUserID satisfies middleware.UserIDGetter.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// JWTService signs and checks HS256 session tokens for student accounts.
type JWTService struct {
	key    []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// NewJWTService builds a service from the secret and lifetime in cfg.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		key: []byte(cfg.Secret),
		ttl: time.Duration(cfg.ExpirationHours) * time.Hour,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// GenerateToken issues a token for userID that expires after the configured number of hours.
func (s *JWTService) GenerateToken(userID uuid.UUID) (string, error) {
	now := jwt.NewNumericDate(time.Now())
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			IssuedAt:  now,
			NotBefore: now,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// tokenFailures maps parser sentinels to the prefix reported to callers. First match wins.
var tokenFailures = []struct {
	sentinel error
	prefix   string
}{
	{jwt.ErrTokenSignatureInvalid, "invalid token signature"},
	{jwt.ErrTokenExpired, "token expired"},
	{jwt.ErrTokenMalformed, "malformed token"},
}

// ValidateToken checks the signature, algorithm, issuer and expiry of raw and returns its claims.
func (s *JWTService) ValidateToken(raw string) (*Claims, error) {
	if raw == "" {
		return nil, errors.New("missing session token")
	}

	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		for _, f := range tokenFailures {
			if errors.Is(err, f.sentinel) {
				return nil, fmt.Errorf("%s: %w", f.prefix, err)
			}
		}
		return nil, fmt.Errorf("rejected session token: %w", err)
	}
	return claims, nil
}

// validatorFunc lets a plain function serve as a middleware.TokenValidator.
type validatorFunc func(string) (middleware.UserIDGetter, error)

func (f validatorFunc) ValidateToken(raw string) (middleware.UserIDGetter, error) {
	return f(raw)
}

// AsTokenValidator exposes ValidateToken to the auth middleware.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return validatorFunc(func(raw string) (middleware.UserIDGetter, error) {
		claims, err := s.ValidateToken(raw)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}
