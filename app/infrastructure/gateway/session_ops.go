package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"docurio.ai/docurio-client/app/domain/common"
	"docurio.ai/docurio-client/app/domain/session"
	"docurio.ai/docurio-client/app/infrastructure/credentials"
)

// SessionTokens is what every auth endpoint returns.
type SessionTokens struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	ExpiresIn    int64             `json:"expires_in"`
	User         *session.Identity `json:"user,omitempty"`
}

// Credential converts the token pair into the shape the credential store
// persists.
func (t *SessionTokens) Credential(now time.Time) *credentials.Credential {
	return &credentials.Credential{
		Token: &oauth2.Token{
			AccessToken:  t.AccessToken,
			RefreshToken: t.RefreshToken,
			TokenType:    "Bearer",
			Expiry:       now.Add(time.Duration(t.ExpiresIn) * time.Second),
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type oidcRequest struct {
	IDToken string `json:"id_token"`
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*SessionTokens, error) {
	return g.postSession(ctx, "/v1/auth/login", loginRequest{Email: email, Password: password})
}

// GuestLogin mints a throwaway guest account and returns its session.
func (g *Gateway) GuestLogin(ctx context.Context) (*SessionTokens, error) {
	return g.postSession(ctx, "/v1/auth/guest-login", nil)
}

func (g *Gateway) RefreshSession(ctx context.Context, refreshToken string) (*SessionTokens, error) {
	return g.postSession(ctx, "/v1/auth/refresh", refreshRequest{RefreshToken: refreshToken})
}

// ExchangeOIDC trades an OIDC id_token for a platform session.
func (g *Gateway) ExchangeOIDC(ctx context.Context, idToken string) (*SessionTokens, error) {
	return g.postSession(ctx, "/v1/auth/oidc", oidcRequest{IDToken: idToken})
}

// Logout revokes the refresh token server-side. The caller clears the local
// credential regardless of the outcome here.
func (g *Gateway) Logout(ctx context.Context) error {
	req := g.client.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, requestID(ctx))
	authed := g.attachCredential(req)
	resp, err := req.Post("/v1/auth/logout")
	if err != nil {
		return &common.ApiError{Kind: common.KindNetwork, Err: err}
	}
	if resp.IsSuccess() {
		return nil
	}
	return classify(resp, authed)
}

// postSession issues an anonymous auth call. A 401 here means bad
// credentials, not an expired session, so classification stays unauthed.
func (g *Gateway) postSession(ctx context.Context, path string, body any) (*SessionTokens, error) {
	req := g.client.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, requestID(ctx))
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		return nil, &common.ApiError{Kind: common.KindNetwork, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, classify(resp, false)
	}
	var tokens SessionTokens
	if err := json.Unmarshal(resp.Bytes(), &tokens); err != nil {
		return nil, fmt.Errorf("malformed session response: %w", err)
	}
	return &tokens, nil
}
