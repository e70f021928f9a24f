package services

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/keyhaven/lockbox-service/internal/dtos"
	"github.com/keyhaven/lockbox-service/internal/middleware"
)

/*
SessionService mints anonymous sessions. There is no signup: every new
browser gets a fresh random identity, and all entries hang off it.
*/
type SessionService interface {
	IssueAnonymousSession() (*dtos.SessionResponse, error)
}

type sessionService struct {
	priv *rsa.PrivateKey
	ttl  time.Duration
}

func NewSessionService(priv *rsa.PrivateKey, ttl time.Duration) SessionService {
	return &sessionService{priv: priv, ttl: ttl}
}

func (s *sessionService) IssueAnonymousSession() (*dtos.SessionResponse, error) {
	userID := uuid.New()
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": userID.String(),
		"iss": middleware.TokenIssuer,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString(s.priv)
	if err != nil {
		return nil, err
	}

	return &dtos.SessionResponse{
		Token:     signed,
		UserID:    userID.String(),
		ExpiresAt: expiresAt,
	}, nil
}
