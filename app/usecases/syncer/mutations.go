package syncer

import (
	"context"
	"encoding/json"

	"docurio.ai/docurio-client/app/domain/common"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/resource"
)

// Run executes one mutation. The outcome goes straight back to the caller
// with no automatic retry; on success the returned representation seeds the
// record's own cache key before dependent keys are invalidated.
func (s *Synchronizer) Run(ctx context.Context, kind mutation.Kind, payload any) (json.RawMessage, error) {
	result, err := s.remote.Mutate(ctx, kind, payload)
	if err != nil {
		if common.IsAuthExpired(err) {
			s.expireSession()
		}
		return nil, err
	}
	subjectID := mutation.SubjectID(kind, payload, result)
	seedKey, hasSeed := mutation.SeedKey(kind, subjectID)
	if hasSeed {
		s.cache.Write(seedKey, result)
	}
	s.propagate(kind, subjectID, seedKey, hasSeed)
	return result, nil
}

// propagate marks the mutation's dependents stale. It only ever runs after
// the mutation succeeded and after its result reached the cache, so an
// invalidation can never precede the success it follows from. The key just
// seeded is skipped: the representation in it is already the post-mutation
// truth.
func (s *Synchronizer) propagate(kind mutation.Kind, subjectID string, seeded resource.Key, hasSeed bool) {
	keys := mutation.Invalidations(kind, subjectID)
	if hasSeed {
		kept := keys[:0]
		for _, k := range keys {
			if !k.Equal(seeded) {
				kept = append(kept, k)
			}
		}
		keys = kept
	}
	if len(keys) == 0 {
		return
	}
	s.cache.Invalidate(keys...)
	s.refreshWatched(keys)
}

// refreshWatched re-fetches every actively watched key matching one of the
// invalidated prefixes, so subscribers converge without waiting for their
// next poll beat.
func (s *Synchronizer) refreshWatched(prefixes []resource.Key) {
	s.mu.Lock()
	var hit []resource.Key
	for _, st := range s.watchers {
		for _, p := range prefixes {
			if st.key.Matches(p) {
				hit = append(hit, st.key)
				break
			}
		}
	}
	s.mu.Unlock()
	for _, key := range hit {
		s.refreshAsync(key)
	}
}
