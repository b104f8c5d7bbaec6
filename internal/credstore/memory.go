package credstore

import (
	"sync"

	"github.com/goliatone/go-router"

	"github.com/goliatone/campaign-console/internal/apiclient"
)

// MemoryStore holds a single credential in memory. It backs tests and any
// non-browser consumer that needs the same storage contract.
type MemoryStore struct {
	mu   sync.RWMutex
	cred *Credential
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ router.Context, token string, user apiclient.UserSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &Credential{Token: token, User: user}
	return nil
}

func (s *MemoryStore) Read(_ router.Context) (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil || s.cred.Token == "" || s.cred.User.ID == "" {
		return Credential{}, false
	}
	return *s.cred, true
}

func (s *MemoryStore) Clear(_ router.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
}

// Seed loads a credential directly, bypassing the router context. Intended
// for test setup.
func (s *MemoryStore) Seed(cred Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
}
