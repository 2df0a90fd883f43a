package types

import (
	"time"
)

// Mood entry intensity buckets.
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// Where a mood entry came from.
const (
	MoodSourceManualLog    = "manual_log"
	MoodSourceChatAnalysis = "chat_analysis"
)

// MoodLog is an append-only mood entry. Entries are never edited after the
// fact; the history views order them newest first by Timestamp.
//
// A zero Timestamp means the stored value was missing or not a readable time.
// Windowed history queries must still include such entries rather than drop
// them.
type MoodLog struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"user_id" json:"user_id"`
	Mood      string    `firestore:"mood" json:"mood"`
	Journal   string    `firestore:"journal" json:"journal"`
	Intensity string    `firestore:"intensity,omitempty" json:"intensity,omitempty"`
	Source    string    `firestore:"source" json:"source"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}
