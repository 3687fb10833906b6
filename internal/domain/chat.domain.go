package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chat is one advisory exchange. Rows are append-only: never mutated or
// deleted, and replayed most-recent-first for context assembly.
type Chat struct {
	ID           int64     `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	HumanMessage string    `json:"human_message"`
	AIMessage    string    `json:"ai_message"`
	Timestamp    time.Time `json:"timestamp"`
}
