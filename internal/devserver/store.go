package devserver

import (
	"strings"
	"sync"

	"launchpad/internal/models"
)

// account pairs a user record with its password hash. The hash never leaves
// the store.
type account struct {
	user models.User
	hash []byte
}

// Store is the devserver's in-memory state. Everything is lost on restart,
// which is the point: the devserver exists so the client can be exercised
// without a real backend.
type Store struct {
	mu       sync.RWMutex
	byID     map[string]*account
	byEmail  map[string]*account
	contents map[string]models.Content
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		byID:     make(map[string]*account),
		byEmail:  make(map[string]*account),
		contents: make(map[string]models.Content),
	}
}

// CreateUser registers a new account. Returns false when the email is
// already taken.
func (s *Store) CreateUser(user models.User, hash []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return false
	}
	acct := &account{user: user, hash: hash}
	s.byEmail[key] = acct
	s.byID[user.ID] = acct
	return true
}

// GetByEmail looks up an account by email, with its password hash.
func (s *Store) GetByEmail(email string) (models.User, []byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return models.User{}, nil, false
	}
	return acct.user, acct.hash, true
}

// GetByID looks up a user by ID.
func (s *Store) GetByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.byID[id]
	if !ok {
		return models.User{}, false
	}
	return acct.user, true
}

// UpdateUser replaces the stored user record. Returns the updated user or
// false when the ID is unknown.
func (s *Store) UpdateUser(user models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.byID[user.ID]
	if !ok {
		return false
	}
	acct.user = user
	return true
}

// CreateContent stores a created content record.
func (s *Store) CreateContent(content models.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents[content.ID] = content
}

// GetContent looks up a content record by ID.
func (s *Store) GetContent(id string) (models.Content, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.contents[id]
	return content, ok
}
