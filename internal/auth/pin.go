// Package auth covers local access control: the numeric PIN, the logged
// sentinel, and session tokens for the HTTP surface.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"unicode"

	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
)

const (
	keyPIN    = "pin"
	keyLogged = "logged"

	minPINLength = 4
)

var (
	ErrPINTooShort   = errors.New("pin must have at least 4 digits")
	ErrPINNotNumeric = errors.New("pin must be numeric")
	ErrPINMismatch   = errors.New("pin does not match")
	ErrNoPIN         = errors.New("no pin configured")
)

func validatePIN(pin string) error {
	if len(pin) < minPINLength {
		return ErrPINTooShort
	}

	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return ErrPINNotNumeric
		}
	}

	return nil
}

// SetPIN validates and stores the PIN, and marks the device as logged
// in, matching the original enrollment flow.
func (s *Service) SetPIN(ctx context.Context, pin string) error {
	if err := validatePIN(pin); err != nil {
		return err
	}

	if err := s.store.Set(ctx, keyPIN, pin); err != nil {
		return err
	}

	return s.store.Set(ctx, keyLogged, "true")
}

// VerifyPIN compares the candidate against the stored PIN in constant
// time.
func (s *Service) VerifyPIN(ctx context.Context, pin string) error {
	stored, err := s.store.Get(ctx, keyPIN)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return ErrNoPIN
		}

		return err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(pin)) != 1 {
		return ErrPINMismatch
	}

	return nil
}

// HasPIN reports whether a PIN has been enrolled.
func (s *Service) HasPIN(ctx context.Context) (bool, error) {
	_, err := s.store.Get(ctx, keyPIN)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// MarkLoggedIn records the logged sentinel (guest access path).
func (s *Service) MarkLoggedIn(ctx context.Context) error {
	return s.store.Set(ctx, keyLogged, "true")
}

// LoggedIn reports whether the sentinel has been written.
func (s *Service) LoggedIn(ctx context.Context) (bool, error) {
	v, err := s.store.Get(ctx, keyLogged)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return v == "true", nil
}
