package otp

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	codeKeyPrefix    = "otp:code:"
	attemptKeyPrefix = "otp:attempts:"
	signupKeyPrefix  = "otp:signup:"
)

type redisStore struct {
	client      *redis.Client
	maxAttempts int
}

// NewRedisStore backs the OTP flow with Redis so codes survive restarts
// and are shared across instances.
func NewRedisStore(client *redis.Client, maxAttempts int) Store {
	return &redisStore{client: client, maxAttempts: maxAttempts}
}

func (s *redisStore) PutCode(ctx context.Context, email, code string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, codeKeyPrefix+email, code, ttl)
	pipe.Set(ctx, attemptKeyPrefix+email, 0, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) VerifyAndConsume(ctx context.Context, email, code string) error {
	stored, err := s.client.Get(ctx, codeKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeExpired
	}
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		attempts, err := s.client.Incr(ctx, attemptKeyPrefix+email).Result()
		if err != nil {
			return err
		}
		if int(attempts) >= s.maxAttempts {
			s.client.Del(ctx, codeKeyPrefix+email, attemptKeyPrefix+email)
			return ErrTooManyAttempts
		}
		return ErrCodeMismatch
	}

	return s.client.Del(ctx, codeKeyPrefix+email, attemptKeyPrefix+email).Err()
}

func (s *redisStore) PutPendingSignup(ctx context.Context, email string, signup *PendingSignup, ttl time.Duration) error {
	payload, err := json.Marshal(signup)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, signupKeyPrefix+email, payload, ttl).Err()
}

func (s *redisStore) TakePendingSignup(ctx context.Context, email string) (*PendingSignup, error) {
	payload, err := s.client.GetDel(ctx, signupKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoPendingSignup
	}
	if err != nil {
		return nil, err
	}
	var signup PendingSignup
	if err := json.Unmarshal([]byte(payload), &signup); err != nil {
		return nil, err
	}
	return &signup, nil
}
