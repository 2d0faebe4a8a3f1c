package syncer

import (
	"context"
	"encoding/json"
	"fmt"

	"docurio.ai/docurio-client/app/domain/common"
	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/domain/session"
	"docurio.ai/docurio-client/app/infrastructure/gateway"
	"docurio.ai/docurio-client/app/utils/logger"
)

// SignIn authenticates with email and password, installs the credential and
// seeds the identity entry from the login response.
func (s *Synchronizer) SignIn(ctx context.Context, email, password string) (*session.Identity, error) {
	tokens, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.installSession(ctx, tokens)
}

// SignInAsGuest mints a guest account server-side and installs its session.
func (s *Synchronizer) SignInAsGuest(ctx context.Context) (*session.Identity, error) {
	tokens, err := s.remote.GuestLogin(ctx)
	if err != nil {
		return nil, err
	}
	return s.installSession(ctx, tokens)
}

// SignInWithOIDC trades an OIDC id_token for a platform session.
func (s *Synchronizer) SignInWithOIDC(ctx context.Context, idToken string) (*session.Identity, error) {
	tokens, err := s.remote.ExchangeOIDC(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return s.installSession(ctx, tokens)
}

// installSession replaces whatever session came before. Previously cached
// data is purged first so the new principal never reads the old one's
// values.
func (s *Synchronizer) installSession(ctx context.Context, tokens *gateway.SessionTokens) (*session.Identity, error) {
	s.stopAllPolls()
	s.cache.PurgeAll(ctx)
	if err := s.creds.Save(tokens.Credential(s.clk.Now())); err != nil {
		return nil, err
	}
	if tokens.User != nil {
		if raw, err := json.Marshal(tokens.User); err == nil {
			s.cache.Write(resource.IdentityKey(), raw)
		}
		return tokens.User, nil
	}
	entry, err := s.ReadFresh(ctx, resource.IdentityKey())
	if err != nil {
		return nil, err
	}
	var ident session.Identity
	if err := json.Unmarshal(entry.Value, &ident); err != nil {
		return nil, fmt.Errorf("malformed identity response: %w", err)
	}
	return &ident, nil
}

// SignOut revokes the session server-side when it can and always clears
// local state, so a failed revocation never leaves the client signed in.
func (s *Synchronizer) SignOut(ctx context.Context) error {
	err := s.remote.Logout(ctx)
	if err != nil {
		logger.GetLogger().Warnf("logout call failed: %v", err)
	}
	if cerr := s.creds.Clear(); cerr != nil && err == nil {
		err = cerr
	}
	s.stopAllPolls()
	s.cache.PurgeAll(ctx)
	return err
}

// RefreshSessionIfNeeded rotates the token pair when the access token is
// inside its refresh window. A rejected refresh means the session is gone
// and tears client state down the same way a 401 does.
func (s *Synchronizer) RefreshSessionIfNeeded(ctx context.Context) error {
	cred, err := s.creds.Load()
	if err != nil {
		return err
	}
	if cred == nil || cred.Token == nil || cred.Token.RefreshToken == "" {
		return nil
	}
	if cred.Token.Expiry.IsZero() || s.clk.Now().Add(sessionRefreshWindow).Before(cred.Token.Expiry) {
		return nil
	}
	tokens, err := s.remote.RefreshSession(ctx, cred.Token.RefreshToken)
	if err != nil {
		kind := common.KindOf(err)
		if kind == common.KindAuthExpired || kind == common.KindClient {
			s.expireSession()
		}
		return err
	}
	return s.creds.Save(tokens.Credential(s.clk.Now()))
}

// SessionSnapshot assembles the guard's input from the synchronous
// credential check and the cached identity entry. No I/O happens here.
//
// An identity that loaded once stays authoritative through a transient
// refresh failure; a revoked session never lingers because the 401 reaction
// purges the value outright.
func (s *Synchronizer) SessionSnapshot() session.Snapshot {
	snap := session.Snapshot{CredentialPresent: s.creds.Present()}
	entry := s.cache.Read(resource.IdentityKey())
	switch {
	case entry.HasValue:
		var ident session.Identity
		if err := json.Unmarshal(entry.Value, &ident); err != nil {
			snap.LoadState = session.LoadStateError
			return snap
		}
		snap.LoadState = session.LoadStateReady
		snap.Identity = &ident
	case entry.LastErr != nil:
		snap.LoadState = session.LoadStateError
	default:
		snap.LoadState = session.LoadStateLoading
	}
	return snap
}
