package memory

import (
	"sync"

	"campanion/app/config"

	"github.com/google/uuid"
	"github.com/samber/do"
)

// capacity bounds how many past interactions a conversation keeps.
const capacity = 2

// Conversation is a FIFO log of the most recent query/result pairs of a
// single session. Oldest entries are evicted first. No dedup, no TTL.
type Conversation struct {
	mu      sync.Mutex
	entries []Entry
}

// Record appends a query/result pair, evicting the oldest entry at capacity.
func (c *Conversation) Record(query string, result any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{Query: query, Result: result}

	if len(c.entries) >= capacity {
		c.entries = append(c.entries[1:], entry)
	} else {
		c.entries = append(c.entries, entry)
	}
}

// Snapshot returns the recorded entries, oldest first.
func (c *Conversation) Snapshot() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)

	return out
}

// Empty reports whether nothing has been recorded yet.
func (c *Conversation) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries) == 0
}

// Service tracks one Conversation per session. Sessions live for the process
// run only, there is no persistence.
type Service struct {
	cfg *config.Config

	mu       sync.RWMutex
	sessions map[string]*Conversation
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:      do.MustInvoke[*config.Config](di),
		sessions: make(map[string]*Conversation),
	}, nil
}

// Session returns the conversation of the given id, creating it on first use.
func (s *Service) Session(id string) *Conversation {
	s.mu.RLock()
	conv, ok := s.sessions[id]
	s.mu.RUnlock()

	if ok {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok = s.sessions[id]; ok {
		return conv
	}

	conv = &Conversation{}
	s.sessions[id] = conv

	return conv
}

// NewSession creates a fresh conversation and returns its id.
func (s *Service) NewSession() string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &Conversation{}
	s.mu.Unlock()

	return id
}

// Drop discards a session and its recorded history.
func (s *Service) Drop(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
