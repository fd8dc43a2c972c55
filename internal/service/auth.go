package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/identity"
	"madalto-backend/internal/logger"
	"madalto-backend/internal/otp"
	"madalto-backend/internal/repository"
)

type authService struct {
	provider      identity.Provider
	otpStore      otp.Store
	emailSvc      EmailService
	applicantRepo repository.ApplicantRepository
	adminRepo     repository.AdminRepository
	otpExpiry     time.Duration
	otpLength     int
}

func NewAuthService(provider identity.Provider, otpStore otp.Store, emailSvc EmailService, applicantRepo repository.ApplicantRepository, adminRepo repository.AdminRepository, otpExpiryMinutes, otpLength int) AuthService {
	return &authService{
		provider:      provider,
		otpStore:      otpStore,
		emailSvc:      emailSvc,
		applicantRepo: applicantRepo,
		adminRepo:     adminRepo,
		otpExpiry:     time.Duration(otpExpiryMinutes) * time.Minute,
		otpLength:     otpLength,
	}
}

// RequestSignupOTP parks the registration in the TTL store and emails a
// code. No account exists until the code is verified.
func (s *authService) RequestSignupOTP(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Validationf("a valid email is required")
	}
	if len(password) < 8 {
		return domain.Validationf("password must be at least 8 characters")
	}

	code, err := otp.GenerateCode(s.otpLength)
	if err != nil {
		return err
	}

	pending := &otp.PendingSignup{Email: email, Password: password}
	if err := s.otpStore.PutPendingSignup(ctx, email, pending, s.otpExpiry); err != nil {
		return domain.Upstreamf("store pending signup: %v", err)
	}
	if err := s.otpStore.PutCode(ctx, email, code, s.otpExpiry); err != nil {
		return domain.Upstreamf("store otp code: %v", err)
	}

	if err := s.emailSvc.SendOTP(ctx, email, code, s.otpExpiry); err != nil {
		return domain.Upstreamf("send otp email: %v", err)
	}
	logger.InfoContext(ctx, "signup otp issued", "email", email)
	return nil
}

// VerifySignupOTP consumes the code, creates the account with the parked
// credentials and signs the new user in.
func (s *authService) VerifySignupOTP(ctx context.Context, email, code string) (*identity.Tokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.otpStore.VerifyAndConsume(ctx, email, code); err != nil {
		return nil, mapOTPErr(err)
	}

	pending, err := s.otpStore.TakePendingSignup(ctx, email)
	if err != nil {
		if errors.Is(err, otp.ErrNoPendingSignup) {
			return nil, domain.Validationf("no pending signup for this email, start over")
		}
		return nil, err
	}

	if _, err := s.provider.CreateUser(ctx, pending.Email, pending.Password); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "account created", "email", email)

	return s.provider.SignIn(ctx, pending.Email, pending.Password)
}

// RequestLoginOTP checks the credentials first, then emails a code. Bad
// credentials never cost an email.
func (s *authService) RequestLoginOTP(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.provider.SignIn(ctx, email, password); err != nil {
		return err
	}

	code, err := otp.GenerateCode(s.otpLength)
	if err != nil {
		return err
	}
	if err := s.otpStore.PutCode(ctx, email, code, s.otpExpiry); err != nil {
		return domain.Upstreamf("store otp code: %v", err)
	}
	if err := s.emailSvc.SendOTP(ctx, email, code, s.otpExpiry); err != nil {
		return domain.Upstreamf("send otp email: %v", err)
	}
	logger.InfoContext(ctx, "login otp issued", "email", email)
	return nil
}

// VerifyLoginOTP consumes the code and signs the user in. The password is
// required again so a stolen code alone is not enough. The role flags come
// from whichever internal records exist for the email.
func (s *authService) VerifyLoginOTP(ctx context.Context, email, password, code string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.otpStore.VerifyAndConsume(ctx, email, code); err != nil {
		return nil, mapOTPErr(err)
	}

	tokens, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{Tokens: tokens}
	if admin, err := s.adminRepo.GetByEmail(ctx, email); err == nil {
		result.IsAdmin = admin.IsActive
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.applicantRepo.GetByEmail(ctx, email); err == nil {
		result.HasApplicantProfile = true
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	logger.InfoContext(ctx, "login verified", "email", email, "is_admin", result.IsAdmin)
	return result, nil
}

func mapOTPErr(err error) error {
	switch {
	case errors.Is(err, otp.ErrCodeMismatch):
		return domain.Validationf("incorrect verification code")
	case errors.Is(err, otp.ErrCodeExpired):
		return domain.Validationf("verification code expired, request a new one")
	case errors.Is(err, otp.ErrTooManyAttempts):
		return domain.Validationf("too many failed attempts, request a new code")
	}
	return err
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (*identity.Tokens, error) {
	return s.provider.Refresh(ctx, refresh)
}

// Authenticate verifies a bearer token and returns the identity behind it.
func (s *authService) Authenticate(ctx context.Context, bearerToken string) (*identity.Identity, error) {
	token := strings.TrimSpace(strings.TrimPrefix(bearerToken, "Bearer "))
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.provider.VerifyIDToken(ctx, token)
}
