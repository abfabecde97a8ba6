package assistant

import (
	"fmt"
	"strings"

	"ragbot/src/core/conversation"
	"ragbot/src/core/retrieval"
)

// HistoryWindow caps the prior turns included in a request. With one
// system message and the new user turn, a request never exceeds
// HistoryWindow+2 messages no matter how long the conversation runs.
const HistoryWindow = 10

const systemPreamble = `You are a friendly support assistant.
Answer in plain prose with no markup or formatting.
Answer only from the context passages below. If the context is not enough to answer, ask a short clarifying question instead of guessing.
Never mention that your answers come from internal documents or a knowledge base.`

const noContextMarker = "No relevant information was found for this question."

// BuildRequest assembles the completion request: the system instruction
// with numbered, attributed context passages (or an explicit no-context
// marker), the last HistoryWindow turns oldest first, then the new user
// turn.
func BuildRequest(query string, passages []retrieval.Passage, history []conversation.Turn) Request {
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n\nContext:\n")
	if len(passages) == 0 {
		b.WriteString(noContextMarker)
	} else {
		for i, p := range passages {
			fmt.Fprintf(&b, "[%d] (%s, page %d) %s\n", i+1, p.DocID, p.PageNum, p.Text)
		}
	}

	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: b.String()})
	for _, turn := range history {
		messages = append(messages, Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, Message{Role: conversation.RoleUser, Content: query})

	return Request{Messages: messages}
}
