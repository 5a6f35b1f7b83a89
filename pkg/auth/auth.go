// Package auth issues and verifies the admin API tokens.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const issuer = "folio"

// Service signs and verifies HS256 JWTs for the single admin user.
type Service struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates an auth service. The TTL defaults to 24 hours when
// zero.
func NewService(secret string, tokenTTL time.Duration) (s *Service, err error) {
	if secret == "" {
		err = errors.New("jwt secret cannot be empty")
		return s, err
	}

	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}

	s = &Service{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
	return s, err
}

// IssueToken signs a token for the given subject.
func (s *Service) IssueToken(subject string) (token string, err error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		err = errors.Wrap(err, "failed to sign token")
		return token, err
	}

	return token, err
}

// VerifyToken validates a token and returns its subject.
func (s *Service) VerifyToken(token string) (subject string, err error) {
	claims := jwt.RegisteredClaims{}
	parsed, parseErr := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (key any, keyErr error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			keyErr = errors.Errorf("unexpected signing method: %v", t.Header["alg"])
			return key, keyErr
		}
		key = s.secret
		return key, keyErr
	}, jwt.WithIssuer(issuer))

	if parseErr != nil {
		err = errors.Wrap(parseErr, "invalid token")
		return subject, err
	}
	if !parsed.Valid {
		err = errors.New("invalid token")
		return subject, err
	}

	subject = claims.Subject
	return subject, err
}

// ExtractToken pulls the bearer token out of an Authorization header value.
func ExtractToken(authHeader string) (token string, err error) {
	if authHeader == "" {
		err = errors.New("empty authorization header")
		return token, err
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		err = errors.New("invalid authorization header format")
		return token, err
	}

	token = strings.TrimSpace(parts[1])
	if token == "" {
		err = errors.New("empty token")
		return token, err
	}

	return token, err
}
