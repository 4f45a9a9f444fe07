package models

import "time"

// ConversationEntry is one append-only exchange turn between a human and an agent
type ConversationEntry struct {
	Agent     Agent     `json:"agent"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewExchange builds the user message and the agent reply, in that order
func NewExchange(agent Agent, message, response string, at time.Time) []ConversationEntry {
	return []ConversationEntry{
		{Agent: AgentUser, Message: message, CreatedAt: at},
		{Agent: agent, Message: response, CreatedAt: at},
	}
}
