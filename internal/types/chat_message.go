package types

import (
	"time"
)

// Message author tags, shared by the legacy chat log and conversations.
const (
	MessageTypeUser = "user"
	MessageTypeAI   = "ai"
)

// ChatMessage is a row in the legacy flat chat log. SessionID is a loose
// grouping key supplied by the client, not a first-class record.
type ChatMessage struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"user_id" json:"user_id"`
	SessionID string    `firestore:"session_id" json:"session_id"`
	Type      string    `firestore:"type" json:"type"`
	Content   string    `firestore:"content" json:"content"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}
