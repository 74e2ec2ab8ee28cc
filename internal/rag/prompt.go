package rag

import (
	"fmt"
	"strings"

	"docqa/internal/model"
)

const promptTemplate = `You are a helpful assistant that answers questions using the PDF context
and the previous conversation. If the context is not sufficient to give
an answer then simply respond i do not know based on the given context.

Conversation History:
%s

Context:
%s

Current Question:
%s

Answer:
`

// RenderTranscript formats prior conversation turns with role labels.
// The final turn of the supplied history is the current question and is
// excluded.
func RenderTranscript(history []model.ConversationTurn) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	for _, turn := range history[:len(history)-1] {
		label := "Assistant"
		if turn.Role == model.RoleUser {
			label = "User"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// BuildPrompt assembles the grounded prompt from transcript, retrieved
// context, and the current question. Pure string assembly, no I/O.
func BuildPrompt(history []model.ConversationTurn, context, question string) string {
	return fmt.Sprintf(promptTemplate, RenderTranscript(history), context, question)
}
