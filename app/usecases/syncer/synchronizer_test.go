package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"docurio.ai/docurio-client/app/domain/common"
	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/domain/session"
	"docurio.ai/docurio-client/app/infrastructure/cache"
	"docurio.ai/docurio-client/app/infrastructure/credentials"
	"docurio.ai/docurio-client/app/infrastructure/gateway"
	"docurio.ai/docurio-client/app/utils/clock"
)

var syncTestEpoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type fakeRemote struct {
	mu      sync.Mutex
	counts  map[string]int
	fetchFn func(key resource.Key, call int) (json.RawMessage, error)

	mutateFn    func(kind mutation.Kind, payload any) (json.RawMessage, error)
	mutateCalls int

	tokens       *gateway.SessionTokens
	loginErr     error
	refreshFn    func(refreshToken string) (*gateway.SessionTokens, error)
	refreshCalls int
	logoutErr    error
	logoutCalls  int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{counts: map[string]int{}}
}

func (f *fakeRemote) Fetch(ctx context.Context, key resource.Key) (json.RawMessage, error) {
	f.mu.Lock()
	f.counts[key.String()]++
	call := f.counts[key.String()]
	fn := f.fetchFn
	f.mu.Unlock()
	if fn != nil {
		return fn(key, call)
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeRemote) FetchCount(key resource.Key) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[key.String()]
}

func (f *fakeRemote) Mutate(ctx context.Context, kind mutation.Kind, payload any) (json.RawMessage, error) {
	f.mu.Lock()
	f.mutateCalls++
	fn := f.mutateFn
	f.mu.Unlock()
	if fn != nil {
		return fn(kind, payload)
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeRemote) Login(ctx context.Context, email, password string) (*gateway.SessionTokens, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.tokens, nil
}

func (f *fakeRemote) GuestLogin(ctx context.Context) (*gateway.SessionTokens, error) {
	return f.tokens, nil
}

func (f *fakeRemote) RefreshSession(ctx context.Context, refreshToken string) (*gateway.SessionTokens, error) {
	f.mu.Lock()
	f.refreshCalls++
	fn := f.refreshFn
	f.mu.Unlock()
	if fn != nil {
		return fn(refreshToken)
	}
	return f.tokens, nil
}

func (f *fakeRemote) ExchangeOIDC(ctx context.Context, idToken string) (*gateway.SessionTokens, error) {
	return f.tokens, nil
}

func (f *fakeRemote) Logout(ctx context.Context) error {
	f.mu.Lock()
	f.logoutCalls++
	f.mu.Unlock()
	return f.logoutErr
}

func newTestSynchronizer(remote *fakeRemote) (*Synchronizer, *clock.Manual, credentials.Store) {
	clk := clock.NewManual(syncTestEpoch)
	creds := credentials.NewMemoryStore()
	rc := cache.NewResultCache(nil, clk)
	return NewSynchronizer(rc, remote, creds, clk), clk, creds
}

func jobJSON(id string, status job.JobStatus) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"id":%q,"status":%q}`, id, status))
}

// waitForFetches blocks until the nth fetch for key has both started and
// committed. Advancing the clock while a flight is still open would make the
// fired poll attach to it instead of fetching, which is exactly the
// single-flight behavior, but it would shift every count the test asserts on.
func waitForFetches(t *testing.T, s *Synchronizer, remote *fakeRemote, key resource.Key, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return remote.FetchCount(key) >= n && !s.Cache().Read(key).InFlight
	}, 2*time.Second, time.Millisecond, "expected %d settled fetches for %s", n, key.String())
}

func waitForTimer(t *testing.T, clk *clock.Manual) {
	t.Helper()
	require.Eventually(t, func() bool {
		return clk.WaiterCount() >= 1
	}, 2*time.Second, time.Millisecond, "expected an armed poll timer")
}

func TestReadSharesOneFlight(t *testing.T) {
	release := make(chan struct{})
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		<-release
		return jobJSON("j_1", job.JobStatusProcessing), nil
	}
	s, _, _ := newTestSynchronizer(remote)
	key := resource.JobKey("j_1")

	// the first read opens the flight before returning, so the second read
	// observes it and must not start another fetch
	s.Read(context.Background(), key)
	s.Read(context.Background(), key)
	close(release)

	waitForFetches(t, s, remote, key, 1)
	require.Eventually(t, func() bool {
		return s.Cache().Read(key).HasValue
	}, 2*time.Second, time.Millisecond)
	assert.Equal(t, 1, remote.FetchCount(key), "concurrent reads must share a single fetch")
}

func TestReadFreshWithinWindowSkipsNetwork(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		return json.RawMessage(`{"id":"u_1","email":"one@docurio.ai"}`), nil
	}
	s, _, _ := newTestSynchronizer(remote)
	key := resource.IdentityKey()

	entry, err := s.ReadFresh(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, entry.HasValue)
	assert.Equal(t, 1, remote.FetchCount(key))

	_, err = s.ReadFresh(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, 1, remote.FetchCount(key), "identity inside its freshness window must not re-fetch")
}

func TestWatchJobPollsUntilTerminal(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		switch call {
		case 1:
			return jobJSON("j_1", job.JobStatusPending), nil
		case 2:
			return jobJSON("j_1", job.JobStatusProcessing), nil
		default:
			return jobJSON("j_1", job.JobStatusCompleted), nil
		}
	}
	s, clk, _ := newTestSynchronizer(remote)
	key := resource.JobKey("j_1")

	_, cancel := s.Watch(key)
	defer cancel()

	waitForFetches(t, s, remote, key, 1)
	waitForTimer(t, clk)
	clk.Advance(job.PendingPollInterval)
	waitForFetches(t, s, remote, key, 2)

	// processing was observed, the loop re-arms at the slower cadence
	waitForTimer(t, clk)
	clk.Advance(job.ProcessingPollInterval)
	waitForFetches(t, s, remote, key, 3)

	// completed is terminal: no further poll may ever fire
	require.Eventually(t, func() bool {
		var j job.Job
		entry := s.Cache().Read(key)
		return json.Unmarshal(entry.Value, &j) == nil && j.Status == job.JobStatusCompleted
	}, 2*time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	clk.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, remote.FetchCount(key), "terminal status stops the poll loop")
}

func TestWatchListPollsOnFixedCadence(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		return json.RawMessage(`{"jobs":[],"total":0,"page":1,"page_size":25}`), nil
	}
	s, clk, _ := newTestSynchronizer(remote)
	key := resource.JobListKey(1, 25)

	_, cancel := s.Watch(key)
	defer cancel()

	waitForFetches(t, s, remote, key, 1)
	waitForTimer(t, clk)
	clk.Advance(job.ListPollInterval)
	waitForFetches(t, s, remote, key, 2)
	waitForTimer(t, clk)
	clk.Advance(job.ListPollInterval)
	waitForFetches(t, s, remote, key, 3)
}

func TestPollErrorReArmsAtFallback(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		switch call {
		case 1:
			return jobJSON("j_1", job.JobStatusProcessing), nil
		case 2:
			return nil, &common.ApiError{Kind: common.KindNetwork, Err: fmt.Errorf("connection refused")}
		default:
			return jobJSON("j_1", job.JobStatusProcessing), nil
		}
	}
	s, clk, _ := newTestSynchronizer(remote)
	key := resource.JobKey("j_1")

	_, cancel := s.Watch(key)
	defer cancel()

	waitForFetches(t, s, remote, key, 1)
	waitForTimer(t, clk)
	clk.Advance(job.ProcessingPollInterval)
	waitForFetches(t, s, remote, key, 2)

	// the failed poll re-arms at the fallback interval instead of dying
	waitForTimer(t, clk)
	clk.Advance(job.ProcessingPollInterval)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, remote.FetchCount(key), "fallback delay is longer than the processing cadence")
	clk.Advance(job.RetryPollInterval - job.ProcessingPollInterval)
	waitForFetches(t, s, remote, key, 3)
}

func TestWatchTeardownStopsPolling(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		return jobJSON("j_1", job.JobStatusProcessing), nil
	}
	s, clk, _ := newTestSynchronizer(remote)
	key := resource.JobKey("j_1")

	_, cancel := s.Watch(key)
	waitForFetches(t, s, remote, key, 1)
	assert.Equal(t, 1, s.WatcherCount(key))

	cancel()
	cancel() // idempotent
	assert.Zero(t, s.WatcherCount(key))

	time.Sleep(20 * time.Millisecond)
	clk.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, remote.FetchCount(key), "no poll may run after the last watcher is gone")
}

func TestSecondWatcherSharesPollLoop(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		return jobJSON("j_1", job.JobStatusProcessing), nil
	}
	s, clk, _ := newTestSynchronizer(remote)
	key := resource.JobKey("j_1")

	_, cancelFirst := s.Watch(key)
	waitForFetches(t, s, remote, key, 1)
	_, cancelSecond := s.Watch(key)
	assert.Equal(t, 2, s.WatcherCount(key))

	cancelFirst()
	waitForTimer(t, clk)
	clk.Advance(job.ProcessingPollInterval)
	waitForFetches(t, s, remote, key, 2)

	cancelSecond()
	time.Sleep(20 * time.Millisecond)
	clk.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, remote.FetchCount(key))
}

func TestSweepSettledJobsDropsOnlyStaleTerminalEntries(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		return jobJSON("j_watched", job.JobStatusCompleted), nil
	}
	s, clk, _ := newTestSynchronizer(remote)

	settled := resource.JobKey("j_done")
	running := resource.JobKey("j_running")
	result := resource.JobResultKey("j_done")
	watched := resource.JobKey("j_watched")
	templates := resource.TemplateListKey()
	s.Cache().Write(settled, jobJSON("j_done", job.JobStatusCompleted))
	s.Cache().Write(running, jobJSON("j_running", job.JobStatusProcessing))
	s.Cache().Write(result, json.RawMessage(`{"job_id":"j_done","content_type":"application/pdf"}`))
	s.Cache().Write(watched, jobJSON("j_watched", job.JobStatusCompleted))
	s.Cache().Write(templates, json.RawMessage(`{"templates":[]}`))

	_, cancel := s.Watch(watched)
	defer cancel()

	clk.Advance(time.Hour)
	dropped := s.SweepSettledJobs(30 * time.Minute)

	assert.Equal(t, 2, dropped)
	assert.False(t, s.Cache().Read(settled).HasValue)
	assert.False(t, s.Cache().Read(result).HasValue)
	assert.True(t, s.Cache().Read(running).HasValue, "active jobs are not the janitor's business")
	assert.True(t, s.Cache().Read(watched).HasValue, "watched entries survive regardless of age")
	assert.True(t, s.Cache().Read(templates).HasValue, "only job-shaped kinds are swept")
}

func TestAuthExpiredTearsSessionDown(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		if key.Kind == resource.KindIdentity {
			return nil, &common.ApiError{Kind: common.KindAuthExpired, Status: http.StatusUnauthorized, Err: fmt.Errorf("token expired")}
		}
		return jobJSON("j_1", job.JobStatusProcessing), nil
	}
	s, clk, creds := newTestSynchronizer(remote)
	require.NoError(t, creds.Save(&credentials.Credential{APIKey: "sk_dead"}))

	jobKey := resource.JobKey("j_1")
	_, cancel := s.Watch(jobKey)
	defer cancel()
	waitForFetches(t, s, remote, jobKey, 1)

	_, err := s.ReadFresh(context.Background(), resource.IdentityKey())
	require.Error(t, err)
	assert.True(t, common.IsAuthExpired(err))

	assert.False(t, creds.Present(), "401 must clear the credential")
	assert.False(t, s.Cache().Read(jobKey).HasValue, "401 must purge cached values")

	time.Sleep(20 * time.Millisecond)
	clk.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, remote.FetchCount(jobKey), "401 must stop running poll loops")
}

func TestRunSeedsOwnKeyAndInvalidatesDependents(t *testing.T) {
	remote := newFakeRemote()
	remote.mutateFn = func(kind mutation.Kind, payload any) (json.RawMessage, error) {
		return jobJSON("j_1", job.JobStatusCancelled), nil
	}
	s, _, _ := newTestSynchronizer(remote)

	listKey := resource.JobListKey(1, 25)
	detailKey := resource.JobKey("j_1")
	resultKey := resource.JobResultKey("j_1")
	s.Cache().Write(listKey, json.RawMessage(`{"jobs":[]}`))
	s.Cache().Write(detailKey, jobJSON("j_1", job.JobStatusProcessing))
	s.Cache().Write(resultKey, json.RawMessage(`{}`))

	result, err := s.Run(context.Background(), mutation.KindJobCancel, mutation.CancelJobPayload{JobID: "j_1"})
	require.NoError(t, err)
	assert.JSONEq(t, string(jobJSON("j_1", job.JobStatusCancelled)), string(result))

	detail := s.Cache().Read(detailKey)
	assert.JSONEq(t, string(jobJSON("j_1", job.JobStatusCancelled)), string(detail.Value), "mutation result seeds the record's own key")
	assert.False(t, detail.Stale, "the seeded representation is already post-mutation truth")

	assert.True(t, s.Cache().Read(listKey).Stale)
	assert.True(t, s.Cache().Read(resultKey).Stale)
}

func TestRunFailureInvalidatesNothing(t *testing.T) {
	remote := newFakeRemote()
	remote.mutateFn = func(kind mutation.Kind, payload any) (json.RawMessage, error) {
		return nil, &common.ApiError{Kind: common.KindServer, Status: http.StatusInternalServerError, Err: fmt.Errorf("boom")}
	}
	s, _, _ := newTestSynchronizer(remote)

	listKey := resource.JobListKey(1, 25)
	s.Cache().Write(listKey, json.RawMessage(`{"jobs":[]}`))

	_, err := s.Run(context.Background(), mutation.KindJobCreate, mutation.CreateJobPayload{Kind: job.JobKindValidation})
	require.Error(t, err)
	assert.Equal(t, common.KindServer, common.KindOf(err))
	assert.False(t, s.Cache().Read(listKey).Stale, "a failed mutation must not invalidate anything")
}

func TestRunRefreshesWatchedDependents(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchFn = func(key resource.Key, call int) (json.RawMessage, error) {
		return json.RawMessage(`{"jobs":[],"total":0,"page":1,"page_size":25}`), nil
	}
	remote.mutateFn = func(kind mutation.Kind, payload any) (json.RawMessage, error) {
		return jobJSON("j_new", job.JobStatusPending), nil
	}
	s, _, _ := newTestSynchronizer(remote)
	listKey := resource.JobListKey(1, 25)

	_, cancel := s.Watch(listKey)
	defer cancel()
	waitForFetches(t, s, remote, listKey, 1)

	_, err := s.Run(context.Background(), mutation.KindJobCreate, mutation.CreateJobPayload{Kind: job.JobKindConversion})
	require.NoError(t, err)

	waitForFetches(t, s, remote, listKey, 2)
}

func TestSignInInstallsSession(t *testing.T) {
	remote := newFakeRemote()
	remote.tokens = &gateway.SessionTokens{
		AccessToken:  "at",
		RefreshToken: "rt",
		ExpiresIn:    900,
		User:         &session.Identity{UserID: "u_1", Email: "one@docurio.ai", PlanTier: "free"},
	}
	s, _, creds := newTestSynchronizer(remote)

	ident, err := s.SignIn(context.Background(), "one@docurio.ai", "secret")
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, "u_1", ident.UserID)

	assert.True(t, creds.Present())
	entry := s.Cache().Read(resource.IdentityKey())
	require.True(t, entry.HasValue, "login response seeds the identity entry")
	assert.False(t, entry.Stale)

	snap := s.SessionSnapshot()
	assert.True(t, snap.CredentialPresent)
	assert.Equal(t, session.LoadStateReady, snap.LoadState)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "u_1", snap.Identity.UserID)
}

func TestSignOutClearsLocalState(t *testing.T) {
	remote := newFakeRemote()
	remote.tokens = &gateway.SessionTokens{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 900}
	s, _, creds := newTestSynchronizer(remote)

	_, err := s.SignInAsGuest(context.Background())
	require.NoError(t, err)
	s.Cache().Write(resource.GuestUsageKey(), json.RawMessage(`{"used":3,"limit":5}`))

	require.NoError(t, s.SignOut(context.Background()))
	assert.Equal(t, 1, remote.logoutCalls)
	assert.False(t, creds.Present())
	assert.False(t, s.Cache().Read(resource.GuestUsageKey()).HasValue)
}

func TestRefreshSessionIfNeeded(t *testing.T) {
	remote := newFakeRemote()
	remote.tokens = &gateway.SessionTokens{AccessToken: "at2", RefreshToken: "rt2", ExpiresIn: 900}
	s, _, creds := newTestSynchronizer(remote)

	// far from expiry, nothing happens
	require.NoError(t, creds.Save(&credentials.Credential{Token: &oauth2.Token{
		AccessToken:  "at",
		RefreshToken: "rt",
		Expiry:       syncTestEpoch.Add(time.Hour),
	}}))
	require.NoError(t, s.RefreshSessionIfNeeded(context.Background()))
	assert.Zero(t, remote.refreshCalls)

	// inside the refresh window, tokens rotate
	require.NoError(t, creds.Save(&credentials.Credential{Token: &oauth2.Token{
		AccessToken:  "at",
		RefreshToken: "rt",
		Expiry:       syncTestEpoch.Add(5 * time.Minute),
	}}))
	require.NoError(t, s.RefreshSessionIfNeeded(context.Background()))
	assert.Equal(t, 1, remote.refreshCalls)
	cred, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, "at2", cred.Token.AccessToken)

	// an API key has nothing to refresh
	require.NoError(t, creds.Save(&credentials.Credential{APIKey: "sk_live_1"}))
	require.NoError(t, s.RefreshSessionIfNeeded(context.Background()))
	assert.Equal(t, 1, remote.refreshCalls)
}

func TestRefreshRejectionExpiresSession(t *testing.T) {
	remote := newFakeRemote()
	remote.refreshFn = func(refreshToken string) (*gateway.SessionTokens, error) {
		return nil, &common.ApiError{Kind: common.KindClient, Status: http.StatusUnauthorized, Err: fmt.Errorf("refresh token revoked")}
	}
	s, _, creds := newTestSynchronizer(remote)
	require.NoError(t, creds.Save(&credentials.Credential{Token: &oauth2.Token{
		AccessToken:  "at",
		RefreshToken: "rt",
		Expiry:       syncTestEpoch.Add(time.Minute),
	}}))

	err := s.RefreshSessionIfNeeded(context.Background())
	require.Error(t, err)
	assert.False(t, creds.Present(), "a rejected refresh is a dead session")
}

func TestSessionSnapshotStates(t *testing.T) {
	remote := newFakeRemote()
	s, _, creds := newTestSynchronizer(remote)

	snap := s.SessionSnapshot()
	assert.False(t, snap.CredentialPresent)
	assert.Equal(t, session.LoadStateLoading, snap.LoadState)

	require.NoError(t, creds.Save(&credentials.Credential{APIKey: "sk_live_1"}))
	snap = s.SessionSnapshot()
	assert.True(t, snap.CredentialPresent)
	assert.Equal(t, session.LoadStateLoading, snap.LoadState, "credential without identity is the loading intermediate state")

	key := resource.IdentityKey()
	flight, owner := s.Cache().BeginFetch(key)
	require.True(t, owner)
	s.Cache().Complete(key, nil, fmt.Errorf("unreachable"))
	<-flight.Done()
	snap = s.SessionSnapshot()
	assert.Equal(t, session.LoadStateError, snap.LoadState)

	s.Cache().Write(key, json.RawMessage(`{"id":"u_1","is_admin":true,"plan":"team"}`))
	snap = s.SessionSnapshot()
	assert.Equal(t, session.LoadStateReady, snap.LoadState)
	require.NotNil(t, snap.Identity)
	assert.True(t, snap.Identity.IsAdmin)

	decision := session.Decide(snap, session.RequireAdmin)
	assert.Equal(t, session.DecisionRender, decision.Kind)
}
