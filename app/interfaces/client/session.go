package client

import (
	"context"

	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/domain/session"
)

func (c *Client) SignIn(ctx context.Context, email, password string) (*session.Identity, error) {
	return c.sync.SignIn(ctx, email, password)
}

func (c *Client) SignInAsGuest(ctx context.Context) (*session.Identity, error) {
	return c.sync.SignInAsGuest(ctx)
}

// SignInWithOIDC exchanges a verified OpenID Connect ID token for a Docurio
// session. Obtaining and verifying the token is the authflow package's job.
func (c *Client) SignInWithOIDC(ctx context.Context, idToken string) (*session.Identity, error) {
	return c.sync.SignInWithOIDC(ctx, idToken)
}

func (c *Client) SignOut(ctx context.Context) error {
	return c.sync.SignOut(ctx)
}

func (c *Client) RefreshSessionIfNeeded(ctx context.Context) error {
	return c.sync.RefreshSessionIfNeeded(ctx)
}

// Session reports the current credential and identity state without touching
// the network.
func (c *Client) Session() session.Snapshot {
	return c.sync.SessionSnapshot()
}

// Guard evaluates whether the caller may enter a surface with the given
// requirement. A present credential whose identity has not loaded yet kicks
// off the load in the background and reports the loading decision, so a UI
// shows a spinner instead of bouncing an authenticated user to login.
func (c *Client) Guard(ctx context.Context, requirement session.Requirement) session.Decision {
	snap := c.sync.SessionSnapshot()
	if snap.CredentialPresent && snap.LoadState == session.LoadStateLoading {
		c.sync.Read(ctx, resource.IdentityKey())
		snap = c.sync.SessionSnapshot()
	}
	return session.Decide(snap, requirement)
}
