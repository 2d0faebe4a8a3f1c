package credentials

import "sync"

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the credential in process memory. It is the default tier
// and the one tests use.
type MemoryStore struct {
	mu   sync.RWMutex
	cred *Credential
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCredential(s.cred), nil
}

func (s *MemoryStore) Save(cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cloneCredential(cred)
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}

func (s *MemoryStore) Present() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.Present()
}

// cloneCredential keeps callers from mutating the stored value through a
// shared pointer.
func cloneCredential(cred *Credential) *Credential {
	if cred == nil {
		return nil
	}
	out := *cred
	if cred.Token != nil {
		tok := *cred.Token
		out.Token = &tok
	}
	return &out
}
