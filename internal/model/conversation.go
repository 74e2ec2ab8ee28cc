package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is a single message in a question-answering conversation.
// An ordered slice of turns forms the history supplied with each question;
// the core never persists it.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
