package identity

import "context"

// Identity is the verified subject extracted from a bearer token.
type Identity struct {
	UUID          string
	Email         string
	EmailVerified bool
}

// Tokens is what a successful sign-in hands back to the client.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UUID         string `json:"uuid"`
	Email        string `json:"email"`
}

// Provider abstracts the identity backend. The production deployment uses
// Firebase; the local provider keeps credentials in our own user table.
type Provider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
	CreateUser(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
}
