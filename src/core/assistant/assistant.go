// Package assistant owns one conversation turn end to end: retrieve
// context, assemble the prompt, call the completion service, and keep
// the history straight. It is the only inbound entry point the
// transport layers use.
package assistant

import (
	"context"
	"sync"

	"ragbot/src/core/conversation"
	"ragbot/src/core/retrieval"
	"ragbot/src/infrastructure/log"
)

// DefaultFallback is the user-visible reply when the completion call
// fails. The turn is not retried; the user's next message is a fresh
// attempt.
const DefaultFallback = "Sorry, I'm having trouble reaching the network right now. Please send that again in a moment."

// DefaultTopK is how many passages a turn retrieves.
const DefaultTopK = 3

// Retriever is the slice of the retrieval service a turn needs.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]retrieval.Passage, error)
}

// Config tunes per-turn behavior. Zero values fall back to defaults.
type Config struct {
	TopK     int
	Fallback string
}

// Service handles conversation turns. Construct one per process with
// explicit dependencies; there is no package-level state.
type Service struct {
	retriever Retriever
	history   *conversation.Store
	completer CompletionClient
	topK      int
	fallback  string

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewService(retriever Retriever, history *conversation.Store, completer CompletionClient, cfg Config) *Service {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.Fallback == "" {
		cfg.Fallback = DefaultFallback
	}
	return &Service{
		retriever: retriever,
		history:   history,
		completer: completer,
		topK:      cfg.TopK,
		fallback:  cfg.Fallback,
		locks:     make(map[int64]*sync.Mutex),
	}
}

// HandleTurn answers one user message. It always returns a reply:
// retrieval failures degrade to a contextless prompt, and completion
// failures degrade to the fallback string without touching history.
// Turns for the same conversation are serialized; turns for different
// conversations proceed independently.
func (s *Service) HandleTurn(ctx context.Context, conversationID int64, query string) string {
	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	passages, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		// An answer is still possible from conversation context alone.
		log.Error(err, "retrieval failed, answering without context", "conversation_id", conversationID)
		passages = nil
	}

	req := BuildRequest(query, passages, s.history.Get(conversationID))

	reply, err := s.completer.Complete(ctx, req)
	if err != nil {
		log.Error(err, "completion failed", "conversation_id", conversationID)
		return s.fallback
	}

	s.history.Append(conversationID,
		conversation.NewTurn(conversation.RoleUser, query),
		conversation.NewTurn(conversation.RoleAssistant, reply),
	)
	return reply
}

// Reset clears the conversation's history.
func (s *Service) Reset(conversationID int64) {
	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()
	s.history.Clear(conversationID)
}

func (s *Service) conversationLock(conversationID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[conversationID] = lock
	}
	return lock
}
