package types

import (
	"time"
)

type ConversationMessage struct {
	Type      string    `firestore:"type" json:"type"`
	Content   string    `firestore:"content" json:"content"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}

// Conversation is a named, ordered message thread owned by exactly one user.
// Messages only ever get appended; Version increments on every append so a
// concurrent append can be detected and retried.
type Conversation struct {
	ID        string                `firestore:"-" json:"id"`
	UserID    string                `firestore:"user_id" json:"user_id"`
	Title     string                `firestore:"title" json:"title"`
	Messages  []ConversationMessage `firestore:"messages" json:"messages"`
	Version   int64                 `firestore:"version" json:"-"`
	CreatedAt time.Time             `firestore:"created_at" json:"created_at"`
	UpdatedAt time.Time             `firestore:"updated_at" json:"updated_at"`
}
