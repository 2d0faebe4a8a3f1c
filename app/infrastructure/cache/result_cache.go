package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/utils/clock"
	"docurio.ai/docurio-client/app/utils/logger"
)

const storeWriteTimeout = 5 * time.Second

// Entry is a point-in-time snapshot of one cached resource. Values are
// replaced wholesale on commit and never mutated in place, so a snapshot
// never shows a half-written value.
type Entry struct {
	Key       resource.Key
	Value     json.RawMessage
	HasValue  bool
	Stale     bool
	InFlight  bool
	UpdatedAt time.Time
	LastErr   error
}

// Flight is one in-flight fetch for a key. At most one exists per key; late
// readers attach to it instead of issuing their own request.
type Flight struct {
	done  chan struct{}
	value json.RawMessage
	err   error
}

func (f *Flight) Done() <-chan struct{} {
	return f.done
}

// Result is valid only after Done is closed.
func (f *Flight) Result() (json.RawMessage, error) {
	return f.value, f.err
}

type entryState struct {
	key       resource.Key
	value     json.RawMessage
	hasValue  bool
	stale     bool
	updatedAt time.Time
	lastErr   error
	flight    *Flight
}

// ResultCache owns every cache entry in the process. Components read,
// subscribe and invalidate through it; only the owner of a resolved fetch or
// mutation commits a value. An optional EntryStore underneath persists
// fresh-capable kinds across restarts.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]*entryState
	subs    map[string]map[int64]chan Entry
	nextSub int64
	store   EntryStore
	clk     clock.Clock
}

func NewResultCache(store EntryStore, clk clock.Clock) *ResultCache {
	return &ResultCache{
		entries: map[string]*entryState{},
		subs:    map[string]map[int64]chan Entry{},
		store:   store,
		clk:     clk,
	}
}

// Store exposes the persistence tier, nil when the cache is memory-only.
func (c *ResultCache) Store() EntryStore {
	return c.store
}

// Read returns the last known state for key immediately. A key never seen
// reads as an empty, stale entry.
func (c *ResultCache) Read(key resource.Key) Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.entries[key.String()]
	if !ok {
		return Entry{Key: key, Stale: true}
	}
	return st.snapshot()
}

// NeedsRefresh reports whether a read of key should trigger a fetch. An
// in-flight fetch suppresses further triggers.
func (c *ResultCache) NeedsRefresh(key resource.Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.entries[key.String()]
	if !ok {
		return true
	}
	if st.flight != nil {
		return false
	}
	if !st.hasValue || st.stale {
		return true
	}
	ttl := resource.FreshFor(key.Kind)
	if ttl <= 0 {
		return true
	}
	return c.clk.Now().After(st.updatedAt.Add(ttl))
}

// BeginFetch registers interest in fetching key. The first caller becomes the
// owner (owner == true) and must call Complete exactly once; every other
// caller gets the same Flight and just waits on Done.
func (c *ResultCache) BeginFetch(key resource.Key) (*Flight, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.ensureLocked(key)
	if st.flight != nil {
		return st.flight, false
	}
	st.flight = &Flight{done: make(chan struct{})}
	c.notifyLocked(key.String(), st.snapshot())
	return st.flight, true
}

// Complete resolves the in-flight fetch for key. On success the value is
// committed and the entry turns fresh; on error the last known value is kept
// and only the error is recorded. Either way the flight is released and
// subscribers are notified.
func (c *ResultCache) Complete(key resource.Key, value json.RawMessage, err error) {
	c.mu.Lock()
	st := c.ensureLocked(key)
	f := st.flight
	st.flight = nil
	if err == nil {
		c.commitLocked(st, value)
	} else {
		st.lastErr = err
	}
	snap := st.snapshot()
	c.notifyLocked(key.String(), snap)
	c.mu.Unlock()

	if f != nil {
		f.value = value
		f.err = err
		close(f.done)
	}
}

// Write commits a value outside any flight. Used by mutation callers to seed
// the entry for the resource representation the server just returned.
func (c *ResultCache) Write(key resource.Key, value json.RawMessage) {
	c.mu.Lock()
	st := c.ensureLocked(key)
	c.commitLocked(st, value)
	c.notifyLocked(key.String(), st.snapshot())
	c.mu.Unlock()
}

// Invalidate marks every entry matching one of the given prefixes stale. The
// last known values stay readable until replacement lands, so consumers keep
// rendering instead of flashing empty.
func (c *ResultCache) Invalidate(prefixes ...resource.Key) {
	c.mu.Lock()
	for rendered, st := range c.entries {
		for _, p := range prefixes {
			if st.key.Matches(p) {
				st.stale = true
				c.notifyLocked(rendered, st.snapshot())
				break
			}
		}
	}
	c.mu.Unlock()
	c.dropStored(prefixes)
}

// InvalidateAll marks every entry stale while keeping last-known values.
func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	for rendered, st := range c.entries {
		st.stale = true
		c.notifyLocked(rendered, st.snapshot())
	}
	c.mu.Unlock()
}

// PurgeAll drops every entry and flushes the persistence tier. Used on
// logout and on credential expiry, where keeping even stale values around
// would leak one principal's data into the next session.
func (c *ResultCache) PurgeAll(ctx context.Context) {
	c.mu.Lock()
	old := c.entries
	c.entries = map[string]*entryState{}
	for rendered := range c.subs {
		st, ok := old[rendered]
		var key resource.Key
		if ok {
			key = st.key
		}
		c.notifyLocked(rendered, Entry{Key: key, Stale: true})
	}
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.DeletePattern(ctx, resource.KeyVersion+":*"); err != nil {
		logger.GetLogger().Warnf("cache store purge failed: %v", err)
	}
}

// Sweep drops every entry fn approves, skipping keys with an in-flight fetch
// or a live subscriber. Dropped entries leave the persistence tier too. It
// returns the number of entries removed.
func (c *ResultCache) Sweep(fn func(key resource.Key, e Entry) bool) int {
	var dropped []resource.Key
	c.mu.Lock()
	for rendered, st := range c.entries {
		if st.flight != nil || len(c.subs[rendered]) > 0 {
			continue
		}
		if fn(st.key, st.snapshot()) {
			delete(c.entries, rendered)
			dropped = append(dropped, st.key)
		}
	}
	c.mu.Unlock()

	if len(dropped) > 0 {
		c.dropStored(dropped)
	}
	return len(dropped)
}

// Subscribe registers for every state change of key. The channel has depth
// one and carries the latest snapshot; intermediate states may be skipped
// when the consumer lags. The returned func tears the subscription down.
func (c *ResultCache) Subscribe(key resource.Key) (<-chan Entry, func()) {
	rendered := key.String()
	ch := make(chan Entry, 1)

	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	if c.subs[rendered] == nil {
		c.subs[rendered] = map[int64]chan Entry{}
	}
	c.subs[rendered][id] = ch
	if st, ok := c.entries[rendered]; ok {
		ch <- st.snapshot()
	} else {
		ch <- Entry{Key: key, Stale: true}
	}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		subs, ok := c.subs[rendered]
		if !ok {
			return
		}
		if _, live := subs[id]; !live {
			return
		}
		delete(subs, id)
		if len(subs) == 0 {
			delete(c.subs, rendered)
		}
		// all sends happen under mu, so closing here cannot race a notify
		close(ch)
	}
	return ch, cancel
}

// Hydrate seeds key from the persistence tier when the in-memory entry has
// no value yet. Freshness is recomputed from the stored write time, so a warm
// start can serve fresh data without a network round trip.
func (c *ResultCache) Hydrate(ctx context.Context, key resource.Key) bool {
	if c.store == nil {
		return false
	}
	c.mu.RLock()
	st, ok := c.entries[key.String()]
	hasValue := ok && st.hasValue
	c.mu.RUnlock()
	if hasValue {
		return false
	}

	raw, err := c.store.Get(ctx, key.String())
	if err != nil {
		if err != ErrNotFound {
			logger.GetLogger().Warnf("cache store read failed for %s: %v", key.String(), err)
		}
		return false
	}
	var stored storedEntry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.GetLogger().Warnf("cache store entry for %s is corrupt: %v", key.String(), err)
		return false
	}

	writtenAt := time.UnixMilli(stored.UpdatedAt)
	ttl := resource.FreshFor(key.Kind)

	c.mu.Lock()
	defer c.mu.Unlock()
	st = c.ensureLocked(key)
	if st.hasValue {
		// a fetch landed while we were reading the store
		return false
	}
	st.value = stored.Value
	st.hasValue = true
	st.updatedAt = writtenAt
	st.stale = ttl <= 0 || c.clk.Now().After(writtenAt.Add(ttl))
	c.notifyLocked(key.String(), st.snapshot())
	return true
}

func (c *ResultCache) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

type storedEntry struct {
	Value     json.RawMessage `json:"value"`
	UpdatedAt int64           `json:"updated_at"`
}

func (st *entryState) snapshot() Entry {
	return Entry{
		Key:       st.key,
		Value:     st.value,
		HasValue:  st.hasValue,
		Stale:     st.stale,
		InFlight:  st.flight != nil,
		UpdatedAt: st.updatedAt,
		LastErr:   st.lastErr,
	}
}

func (c *ResultCache) ensureLocked(key resource.Key) *entryState {
	rendered := key.String()
	st, ok := c.entries[rendered]
	if !ok {
		st = &entryState{key: key, stale: true}
		c.entries[rendered] = st
	}
	return st
}

func (c *ResultCache) commitLocked(st *entryState, value json.RawMessage) {
	st.value = value
	st.hasValue = true
	st.stale = false
	st.lastErr = nil
	st.updatedAt = c.clk.Now()
	c.persist(st.key, value, st.updatedAt)
}

// notifyLocked delivers the latest snapshot to every subscriber of the key.
// Channels hold one element; a full channel is drained first so the consumer
// always finds the newest state.
func (c *ResultCache) notifyLocked(rendered string, snap Entry) {
	for _, ch := range c.subs[rendered] {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// persist writes fresh-capable kinds through to the store. Always-stale kinds
// are skipped: they get re-fetched on every read anyway.
func (c *ResultCache) persist(key resource.Key, value json.RawMessage, updatedAt time.Time) {
	if c.store == nil {
		return
	}
	ttl := resource.FreshFor(key.Kind)
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(storedEntry{Value: value, UpdatedAt: updatedAt.UnixMilli()})
	if err != nil {
		logger.GetLogger().Warnf("cache store marshal failed for %s: %v", key.String(), err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeWriteTimeout)
		defer cancel()
		if err := c.store.Set(ctx, key.String(), string(data), ttl); err != nil {
			logger.GetLogger().Warnf("cache store write failed for %s: %v", key.String(), err)
		}
	}()
}

// dropStored removes invalidated keys from the store so a later warm start
// cannot resurrect data a mutation already superseded.
func (c *ResultCache) dropStored(prefixes []resource.Key) {
	if c.store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeWriteTimeout)
		defer cancel()
		for _, p := range prefixes {
			if err := c.store.Delete(ctx, p.String()); err != nil {
				logger.GetLogger().Warnf("cache store delete failed for %s: %v", p.String(), err)
			}
			if err := c.store.DeletePattern(ctx, p.String()+":*"); err != nil {
				logger.GetLogger().Warnf("cache store pattern delete failed for %s: %v", p.String(), err)
			}
		}
	}()
}
