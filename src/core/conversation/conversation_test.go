package conversation_test

import (
	"fmt"
	"sync"
	"testing"

	"ragbot/src/core/conversation"
)

func TestAppendAndGetOrder(t *testing.T) {
	store := conversation.NewStore()

	store.Append(1, conversation.NewTurn(conversation.RoleUser, "hello"))
	store.Append(1,
		conversation.NewTurn(conversation.RoleAssistant, "hi there"),
		conversation.NewTurn(conversation.RoleUser, "how are you"),
	)

	turns := store.Get(1)
	if len(turns) != 3 {
		t.Fatalf("Get() returned %d turns, want 3", len(turns))
	}
	wantContents := []string{"hello", "hi there", "how are you"}
	wantRoles := []string{conversation.RoleUser, conversation.RoleAssistant, conversation.RoleUser}
	for i, turn := range turns {
		if turn.Content != wantContents[i] || turn.Role != wantRoles[i] {
			t.Errorf("turn %d = {%s %q}, want {%s %q}", i, turn.Role, turn.Content, wantRoles[i], wantContents[i])
		}
		if turn.ID == "" {
			t.Errorf("turn %d has empty id", i)
		}
	}
}

func TestConversationIsolation(t *testing.T) {
	store := conversation.NewStore()

	store.Append(1, conversation.NewTurn(conversation.RoleUser, "for conversation one"))

	if got := store.Get(2); len(got) != 0 {
		t.Errorf("conversation 2 sees %d turns from conversation 1", len(got))
	}

	store.Append(2, conversation.NewTurn(conversation.RoleUser, "for conversation two"))
	if got := store.Get(1); len(got) != 1 || got[0].Content != "for conversation one" {
		t.Errorf("conversation 1 history changed after appending to 2: %+v", got)
	}
}

func TestClear(t *testing.T) {
	store := conversation.NewStore()
	store.Append(7, conversation.NewTurn(conversation.RoleUser, "a"))
	store.Append(7, conversation.NewTurn(conversation.RoleAssistant, "b"))

	store.Clear(7)

	if got := store.Get(7); len(got) != 0 {
		t.Errorf("Get() after Clear() returned %d turns, want 0", len(got))
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := conversation.NewStore()
	store.Append(1, conversation.NewTurn(conversation.RoleUser, "original"))

	turns := store.Get(1)
	turns[0].Content = "mutated"

	if got := store.Get(1); got[0].Content != "original" {
		t.Errorf("mutating a Get() result leaked into the store: %q", got[0].Content)
	}
}

func TestConcurrentConversations(t *testing.T) {
	store := conversation.NewStore()
	const conversations = 8
	const turnsEach = 50

	var wg sync.WaitGroup
	for id := int64(0); id < conversations; id++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for i := 0; i < turnsEach; i++ {
				store.Append(id, conversation.NewTurn(conversation.RoleUser, fmt.Sprintf("turn %d", i)))
			}
		}(id)
	}
	wg.Wait()

	for id := int64(0); id < conversations; id++ {
		if got := store.Len(id); got != turnsEach {
			t.Errorf("conversation %d has %d turns, want %d", id, got, turnsEach)
		}
	}
}
