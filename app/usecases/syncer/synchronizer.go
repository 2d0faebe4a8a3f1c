package syncer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"docurio.ai/docurio-client/app/domain/common"
	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/infrastructure/cache"
	"docurio.ai/docurio-client/app/infrastructure/credentials"
	"docurio.ai/docurio-client/app/infrastructure/gateway"
	"docurio.ai/docurio-client/app/utils/clock"
	"docurio.ai/docurio-client/app/utils/logger"
)

const (
	storeFlushTimeout    = 5 * time.Second
	sessionRefreshWindow = 10 * time.Minute
)

// Remote is the gateway surface the synchronizer drives.
type Remote interface {
	Fetch(ctx context.Context, key resource.Key) (json.RawMessage, error)
	Mutate(ctx context.Context, kind mutation.Kind, payload any) (json.RawMessage, error)
	Login(ctx context.Context, email, password string) (*gateway.SessionTokens, error)
	GuestLogin(ctx context.Context) (*gateway.SessionTokens, error)
	RefreshSession(ctx context.Context, refreshToken string) (*gateway.SessionTokens, error)
	ExchangeOIDC(ctx context.Context, idToken string) (*gateway.SessionTokens, error)
	Logout(ctx context.Context) error
}

// Synchronizer keeps the result cache in step with the server: it triggers
// refreshes behind reads, runs the adaptive poll loop for watched job keys,
// propagates invalidations after mutations, and reacts to an expired session
// by tearing the whole client state down.
type Synchronizer struct {
	cache  *cache.ResultCache
	remote Remote
	creds  credentials.Store
	clk    clock.Clock

	mu       sync.Mutex
	watchers map[string]*watchState
}

type watchState struct {
	key   resource.Key
	count int
	stop  context.CancelFunc
}

func NewSynchronizer(rc *cache.ResultCache, remote Remote, creds credentials.Store, clk clock.Clock) *Synchronizer {
	return &Synchronizer{
		cache:    rc,
		remote:   remote,
		creds:    creds,
		clk:      clk,
		watchers: map[string]*watchState{},
	}
}

// Cache exposes the underlying result cache for snapshot reads.
func (s *Synchronizer) Cache() *cache.ResultCache {
	return s.cache
}

// Read returns the last known entry for key immediately and triggers a
// background refresh when the entry is absent, stale or past its freshness
// window. The refresh is single-flight; concurrent reads share it.
func (s *Synchronizer) Read(ctx context.Context, key resource.Key) cache.Entry {
	s.cache.Hydrate(ctx, key)
	if s.cache.NeedsRefresh(key) {
		s.refreshAsync(key)
	}
	return s.cache.Read(key)
}

// ReadFresh blocks until a fetch for key resolves, then returns the entry.
// When another fetch is already in flight it attaches to that one. The
// returned error is the fetch outcome; the entry still carries any last
// known value.
func (s *Synchronizer) ReadFresh(ctx context.Context, key resource.Key) (cache.Entry, error) {
	s.cache.Hydrate(ctx, key)
	if !s.cache.NeedsRefresh(key) && !s.cache.Read(key).InFlight {
		return s.cache.Read(key), nil
	}
	flight, owner := s.cache.BeginFetch(key)
	if owner {
		value, err := s.remote.Fetch(ctx, key)
		s.finishFetch(key, value, err)
	} else {
		select {
		case <-flight.Done():
		case <-ctx.Done():
			return s.cache.Read(key), ctx.Err()
		}
	}
	if _, err := flight.Result(); err != nil {
		return s.cache.Read(key), err
	}
	return s.cache.Read(key), nil
}

// Watch subscribes to every state change of key. The first watcher of a
// job-shaped key starts its poll loop; the loop dies with the last watcher,
// never outliving its consumers. The returned cancel is idempotent.
func (s *Synchronizer) Watch(key resource.Key) (<-chan cache.Entry, func()) {
	ch, unsub := s.cache.Subscribe(key)
	s.addWatcher(key)
	if s.cache.NeedsRefresh(key) {
		s.refreshAsync(key)
	}
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			unsub()
			s.removeWatcher(key)
		})
	}
	return ch, cancel
}

func (s *Synchronizer) addWatcher(key resource.Key) {
	rendered := key.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.watchers[rendered]
	if !ok {
		st = &watchState{key: key}
		s.watchers[rendered] = st
	}
	st.count++
	if st.count == 1 && pollShaped(key.Kind) {
		ctx, stop := context.WithCancel(context.Background())
		st.stop = stop
		go s.pollLoop(ctx, key)
	}
}

func (s *Synchronizer) removeWatcher(key resource.Key) {
	rendered := key.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.watchers[rendered]
	if !ok {
		return
	}
	st.count--
	if st.count > 0 {
		return
	}
	if st.stop != nil {
		st.stop()
	}
	delete(s.watchers, rendered)
}

// WatcherCount reports active watchers for key.
func (s *Synchronizer) WatcherCount(key resource.Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.watchers[key.String()]; ok {
		return st.count
	}
	return 0
}

// SweepSettledJobs drops terminal job and result entries that sat unwatched
// past the retention window. Their truth is immutable server-side, so a later
// read just re-fetches; keeping them forever only grows the cache. Entries
// with live subscribers are never touched.
func (s *Synchronizer) SweepSettledJobs(retention time.Duration) int {
	cutoff := s.clk.Now().Add(-retention)
	return s.cache.Sweep(func(key resource.Key, e cache.Entry) bool {
		if !e.HasValue || e.UpdatedAt.After(cutoff) {
			return false
		}
		switch key.Kind {
		case resource.KindJobResult:
			// results exist only for settled jobs
			return true
		case resource.KindJob:
			var j job.Job
			if err := json.Unmarshal(e.Value, &j); err != nil {
				return false
			}
			return j.Status.IsTerminal()
		default:
			return false
		}
	})
}

func pollShaped(kind resource.Kind) bool {
	return kind == resource.KindJob || kind == resource.KindJobList
}

// pollLoop re-arms one timer per watched key. It never overlaps polls: the
// next delay is computed only after the previous fetch resolved, from the
// status that fetch observed.
func (s *Synchronizer) pollLoop(ctx context.Context, key resource.Key) {
	for {
		delay, ok := s.nextDelay(key)
		if !ok {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-s.clk.After(delay):
		}
		if ctx.Err() != nil {
			return
		}
		s.pollOnce(ctx, key)
	}
}

// nextDelay derives the poll cadence from the latest entry. A terminal job
// status stops the loop for good; a failed fetch re-arms at the fallback
// interval, because an error never advances status and must not kill the
// loop either.
func (s *Synchronizer) nextDelay(key resource.Key) (time.Duration, bool) {
	if key.Kind == resource.KindJobList {
		return job.ListPollInterval, true
	}
	entry := s.cache.Read(key)
	if entry.HasValue {
		var j job.Job
		if err := json.Unmarshal(entry.Value, &j); err == nil {
			if j.Status.IsTerminal() {
				return 0, false
			}
			if entry.LastErr != nil {
				return job.RetryPollInterval, true
			}
			return job.NextPoll(j.Status)
		}
	}
	if entry.LastErr != nil {
		return job.RetryPollInterval, true
	}
	// nothing observed yet, poll at the initial cadence
	return job.PendingPollInterval, true
}

func (s *Synchronizer) pollOnce(ctx context.Context, key resource.Key) {
	flight, owner := s.cache.BeginFetch(key)
	if !owner {
		select {
		case <-flight.Done():
		case <-ctx.Done():
		}
		return
	}
	value, err := s.remote.Fetch(ctx, key)
	s.finishFetch(key, value, err)
}

// finishFetch commits a fetch outcome and handles the one error the core
// reacts to structurally.
func (s *Synchronizer) finishFetch(key resource.Key, value json.RawMessage, err error) {
	s.cache.Complete(key, value, err)
	if err != nil && common.IsAuthExpired(err) {
		s.expireSession()
	}
}

// refreshAsync starts a background fetch for key unless one is already in
// flight.
func (s *Synchronizer) refreshAsync(key resource.Key) {
	_, owner := s.cache.BeginFetch(key)
	if !owner {
		return
	}
	go func() {
		value, err := s.remote.Fetch(context.Background(), key)
		s.finishFetch(key, value, err)
	}()
}

// expireSession is the structural reaction to a 401 on an authenticated
// call: clear the credential, stop every poll loop, and drop all cached
// values so no privileged data survives the dead session. The guard snapshot
// flips to credential-absent on its next evaluation.
func (s *Synchronizer) expireSession() {
	if err := s.creds.Clear(); err != nil {
		logger.GetLogger().Warnf("failed to clear credentials: %v", err)
	}
	s.stopAllPolls()
	ctx, cancel := context.WithTimeout(context.Background(), storeFlushTimeout)
	defer cancel()
	s.cache.PurgeAll(ctx)
	logger.GetLogger().Warn("session expired, cleared credentials and cached data")
}

func (s *Synchronizer) stopAllPolls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.watchers {
		if st.stop != nil {
			st.stop()
			st.stop = nil
		}
	}
}
