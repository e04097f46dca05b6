package supabase

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Anasnah/Adkari-fin4/internal/domain"
)

// AuthClient handles GoTrue authentication operations.
type AuthClient struct {
	client *Client
}

// AuthUser is the provider's view of an authenticated principal.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an auth session with its tokens.
type Session struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	User         *AuthUser `json:"user,omitempty"`
}

func (a *AuthClient) authURL(path string) string {
	return a.client.baseURL + "/auth/v1" + path
}

func (a *AuthClient) session(ctx context.Context, method, url string, payload any) (*Session, error) {
	req, err := a.client.newRequest(ctx, method, url, payload)
	if err != nil {
		return nil, err
	}
	a.client.setHeaders(req)

	resp, err := a.client.do(req, "auth")
	if err != nil {
		return nil, err
	}
	if resp.statusCode >= 400 {
		return nil, authError(resp.body, resp.statusCode)
	}

	var sess Session
	if err := json.Unmarshal(resp.body, &sess); err != nil {
		return nil, domain.ProviderError("unmarshal auth response", err)
	}
	// Signup with email confirmation enabled returns the bare user
	// instead of a session.
	if sess.User == nil {
		var user AuthUser
		if err := json.Unmarshal(resp.body, &user); err == nil && user.ID != "" {
			sess.User = &user
		}
	}
	return &sess, nil
}

// SignUp creates a new user.
func (a *AuthClient) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return a.session(ctx, http.MethodPost, a.authURL("/signup"), map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignIn authenticates a user with email and password.
func (a *AuthClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return a.session(ctx, http.MethodPost, a.authURL("/token?grant_type=password"), map[string]string{
		"email":    email,
		"password": password,
	})
}

// RefreshToken exchanges a refresh token for a new session.
func (a *AuthClient) RefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	return a.session(ctx, http.MethodPost, a.authURL("/token?grant_type=refresh_token"), map[string]string{
		"refresh_token": refreshToken,
	})
}

// GetUser retrieves the principal behind an access token.
func (a *AuthClient) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	req, err := a.client.newRequest(ctx, http.MethodGet, a.authURL("/user"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	a.client.setHeaders(req)

	resp, err := a.client.do(req, "auth")
	if err != nil {
		return nil, err
	}
	if resp.statusCode >= 400 {
		return nil, authError(resp.body, resp.statusCode)
	}

	var user AuthUser
	if err := json.Unmarshal(resp.body, &user); err != nil {
		return nil, domain.ProviderError("unmarshal auth user", err)
	}
	return &user, nil
}

// UpdatePassword sets a new password for the signed-in principal.
func (a *AuthClient) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	req, err := a.client.newRequest(ctx, http.MethodPut, a.authURL("/user"), map[string]string{
		"password": newPassword,
	})
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	a.client.setHeaders(req)

	resp, err := a.client.do(req, "auth")
	if err != nil {
		return err
	}
	if resp.statusCode >= 400 {
		return authError(resp.body, resp.statusCode)
	}
	return nil
}

// SignOut invalidates the provider session behind an access token.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	req, err := a.client.newRequest(ctx, http.MethodPost, a.authURL("/logout"), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	a.client.setHeaders(req)

	resp, err := a.client.do(req, "auth")
	if err != nil {
		return err
	}
	if resp.statusCode >= 400 {
		return authError(resp.body, resp.statusCode)
	}
	return nil
}

// ResetPasswordForEmail sends a password recovery email.
func (a *AuthClient) ResetPasswordForEmail(ctx context.Context, email string) error {
	req, err := a.client.newRequest(ctx, http.MethodPost, a.authURL("/recover"), map[string]string{
		"email": email,
	})
	if err != nil {
		return err
	}
	a.client.setHeaders(req)

	resp, err := a.client.do(req, "auth")
	if err != nil {
		return err
	}
	if resp.statusCode >= 400 {
		return authError(resp.body, resp.statusCode)
	}
	return nil
}
