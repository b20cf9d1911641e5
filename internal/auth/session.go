package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
)

const sessionTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid session token")

// Service issues and checks access for the HTTP surface, on top of the
// locally stored PIN.
type Service struct {
	store  kvstore.Store
	secret []byte
	now    func() time.Time
}

func NewService(store kvstore.Store, secret string) *Service {
	return &Service{store: store, secret: []byte(secret), now: time.Now}
}

// WithClock replaces the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IssueSession verifies the PIN and returns a signed bearer token.
func (s *Service) IssueSession(ctx context.Context, pin string) (string, error) {
	if err := s.VerifyPIN(ctx, pin); err != nil {
		return "", err
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	return token, nil
}

// VerifySession validates a bearer token issued by IssueSession.
func (s *Service) VerifySession(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}

	return nil
}

// Middleware rejects requests lacking a valid bearer token.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		if err := s.VerifySession(token); err != nil {
			http.Error(w, "invalid session", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
