package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
	"madalto-backend/internal/security"
)

type localProvider struct {
	users  repository.UserRepository
	tokens security.TokenManager
}

// NewLocalProvider keeps credentials in the useraccount table and issues
// its own JWTs. Used in development and self-hosted deployments where
// Firebase is not available.
func NewLocalProvider(users repository.UserRepository, tokens security.TokenManager) Provider {
	return &localProvider{users: users, tokens: tokens}
}

func (p *localProvider) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	claims, err := p.tokens.ValidateToken(idToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if claims.Type != security.TokenTypeAccess {
		return nil, domain.ErrUnauthenticated
	}
	return &Identity{UUID: claims.UUID, Email: claims.Email, EmailVerified: true}, nil
}

func (p *localProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	if _, err := p.users.GetByEmail(ctx, email); err == nil {
		return "", domain.Conflictf("email %s is already registered", email)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &domain.UserAccount{
		UUID:         uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		IsVerified:   true,
	}
	if err := p.users.Create(ctx, user); err != nil {
		return "", err
	}
	return user.UUID, nil
}

func (p *localProvider) SignIn(ctx context.Context, email, password string) (*Tokens, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}

	access, err := p.tokens.GenerateAccessToken(user.UUID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := p.tokens.GenerateRefreshToken(user.UUID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		UUID:         user.UUID,
		Email:        user.Email,
	}, nil
}

func (p *localProvider) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	claims, err := p.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if claims.Type != security.TokenTypeRefresh {
		return nil, domain.ErrUnauthenticated
	}

	access, err := p.tokens.GenerateAccessToken(claims.UUID, claims.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := p.tokens.GenerateRefreshToken(claims.UUID, claims.Email)
	if err != nil {
		return nil, err
	}
	return &Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		UUID:         claims.UUID,
		Email:        claims.Email,
	}, nil
}
