package conversation

import "emoticore-be/pkg/llm"

// MaxHistoryEntries bounds how much prior conversation reaches the model.
const MaxHistoryEntries = 10

// HistoryEntry is a prior turn as the client reports it.
type HistoryEntry struct {
	Content string
	IsBot   bool
}

// BuildWindow assembles the provider input: the system prompt, the most recent
// MaxHistoryEntries history entries in their original order, then the new message.
func BuildWindow(systemPrompt string, history []HistoryEntry, newMessage string) []llm.Message {
	if len(history) > MaxHistoryEntries {
		history = history[len(history)-MaxHistoryEntries:]
	}

	window := make([]llm.Message, 0, len(history)+2)
	window = append(window, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, entry := range history {
		role := llm.RoleUser
		if entry.IsBot {
			role = llm.RoleAssistant
		}
		window = append(window, llm.Message{Role: role, Content: entry.Content})
	}
	window = append(window, llm.Message{Role: llm.RoleUser, Content: newMessage})
	return window
}
