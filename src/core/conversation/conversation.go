// Package conversation keeps the per-conversation turn log. History is
// process-local and intentionally not persisted; a restart starts every
// conversation fresh.
package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	ID        string
	Role      string
	Content   string
	CreatedAt time.Time
}

// NewTurn builds a turn with a fresh id and timestamp.
func NewTurn(role, content string) Turn {
	return Turn{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Store maps conversation ids to their turn logs. Map access is
// synchronized, so different conversations never contend; serializing
// the read-assemble-append cycle of a single conversation is the
// caller's responsibility.
type Store struct {
	mu       sync.RWMutex
	byConvID map[int64][]Turn
}

func NewStore() *Store {
	return &Store{
		byConvID: make(map[int64][]Turn),
	}
}

// Get returns a copy of the conversation's turns, oldest first. Unknown
// ids yield an empty history.
func (s *Store) Get(conversationID int64) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.byConvID[conversationID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Append adds turns to the end of the conversation's log, creating the
// log on first use.
func (s *Store) Append(conversationID int64, turns ...Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byConvID[conversationID] = append(s.byConvID[conversationID], turns...)
}

// Clear drops the conversation's history entirely.
func (s *Store) Clear(conversationID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byConvID, conversationID)
}

// Len returns the number of stored turns for the conversation.
func (s *Store) Len(conversationID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byConvID[conversationID])
}
