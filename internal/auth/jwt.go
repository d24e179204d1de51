package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
)

// TokenService issues and checks HS256 JWTs. The user's email is the subject.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Generate(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	return signed, errors.Wrap(err, "sign token")
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return s.secret, nil
}

// ExtractSubject returns the subject claim. An expired token yields
// apperr.ErrTokenExpired; any other failure yields an opaque error.
func (s *TokenService) ExtractSubject(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.ErrTokenExpired
		}
		return "", err
	}
	return claims.Subject, nil
}

// IsValid reports whether the token parses, is unexpired, and was issued
// for the given email.
func (s *TokenService) IsValid(raw, email string) bool {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, s.keyFunc)
	if err != nil || !token.Valid {
		return false
	}
	return claims.Subject == email
}
