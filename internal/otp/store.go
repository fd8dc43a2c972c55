package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

var (
	ErrCodeMismatch    = errors.New("otp code does not match")
	ErrCodeExpired     = errors.New("otp code expired or not issued")
	ErrTooManyAttempts = errors.New("too many failed otp attempts")
	ErrNoPendingSignup = errors.New("no pending signup for this email")
)

// PendingSignup holds the registration data between the OTP being sent and
// the code being verified. Nothing is written to the identity backend
// until the code checks out; the entry expires with the code.
type PendingSignup struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Store is the keyed TTL store backing the OTP flow. Codes are consumed on
// successful verification and removed after too many failures; everything
// expires on its own.
type Store interface {
	PutCode(ctx context.Context, email, code string, ttl time.Duration) error
	VerifyAndConsume(ctx context.Context, email, code string) error
	PutPendingSignup(ctx context.Context, email string, signup *PendingSignup, ttl time.Duration) error
	TakePendingSignup(ctx context.Context, email string) (*PendingSignup, error)
}

// GenerateCode returns a random numeric code of the given length.
func GenerateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
