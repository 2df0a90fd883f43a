package types

import (
	"time"
)

type User struct {
	ID          string    `firestore:"-" json:"id"`
	Email       string    `firestore:"email" json:"email"`
	DisplayName string    `firestore:"display_name" json:"display_name"`
	CreatedAt   time.Time `firestore:"created_at" json:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at" json:"updated_at"`
}
