package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/logger"
)

const (
	signInEndpoint  = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"
	refreshEndpoint = "https://securetoken.googleapis.com/v1/token"
)

type firebaseProvider struct {
	client    *auth.Client
	webAPIKey string
	http      *http.Client
}

// NewFirebaseProvider initializes the Firebase Admin SDK from a service
// account credentials file. The web API key is needed for the password
// sign-in REST calls, which the Admin SDK does not cover.
func NewFirebaseProvider(ctx context.Context, credentialsFile, webAPIKey string) (Provider, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth client: %w", err)
	}
	return &firebaseProvider{
		client:    client,
		webAPIKey: webAPIKey,
		http:      http.DefaultClient,
	}, nil
}

func (p *firebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	logger.ExternalServiceCall("firebase", "VerifyIDToken")
	token, err := p.client.VerifyIDToken(ctx, idToken)
	logger.ExternalServiceResult("firebase", "VerifyIDToken", err)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	email, _ := token.Claims["email"].(string)
	verified, _ := token.Claims["email_verified"].(bool)
	if email == "" || token.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return &Identity{UUID: token.UID, Email: email, EmailVerified: verified}, nil
}

func (p *firebaseProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password).EmailVerified(true)
	logger.ExternalServiceCall("firebase", "CreateUser", "email", email)
	user, err := p.client.CreateUser(ctx, params)
	logger.ExternalServiceResult("firebase", "CreateUser", err)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", domain.Conflictf("email %s is already registered", email)
		}
		return "", domain.Upstreamf("create user: %v", err)
	}
	return user.UID, nil
}

func (p *firebaseProvider) SignIn(ctx context.Context, email, password string) (*Tokens, error) {
	body := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var result struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
	}
	if err := p.post(ctx, signInEndpoint+"?key="+p.webAPIKey, body, &result); err != nil {
		return nil, err
	}
	return &Tokens{
		AccessToken:  result.IDToken,
		RefreshToken: result.RefreshToken,
		UUID:         result.LocalID,
		Email:        result.Email,
	}, nil
}

func (p *firebaseProvider) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	body := map[string]interface{}{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
	}
	var result struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		UserID       string `json:"user_id"`
	}
	if err := p.post(ctx, refreshEndpoint+"?key="+p.webAPIKey, body, &result); err != nil {
		return nil, err
	}
	return &Tokens{
		AccessToken:  result.IDToken,
		RefreshToken: result.RefreshToken,
		UUID:         result.UserID,
	}, nil
}

func (p *firebaseProvider) post(ctx context.Context, url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return domain.Upstreamf("identity toolkit request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthenticated
	}
	if resp.StatusCode >= 400 {
		return domain.Upstreamf("identity toolkit returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
