package types

import (
	"time"
)

type WellnessActivity struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"user_id" json:"user_id"`
	Activity  string    `firestore:"activity" json:"activity"`
	Details   string    `firestore:"details,omitempty" json:"details,omitempty"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}
