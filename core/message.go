package core

import (
	"context"
	"strings"
	"time"
)

// TempMessagePrefix id prefix of messages not yet confirmed by the api
const TempMessagePrefix = "tmp-"

type (
	// Message support chat message
	Message struct {
		ID         string    `json:"id"`
		FromUserID int64     `json:"from_user_id"`
		ToUserID   int64     `json:"to_user_id"`
		Body       string    `json:"body"`
		CreatedAt  time.Time `json:"created_at"`
		IsRead     bool      `json:"is_read"`
	}

	// MessageStore message store interface
	MessageStore interface {
		// List thread between user and counterpart
		List(ctx context.Context, userID, counterpartID int64) ([]*Message, error)
		Send(ctx context.Context, userID, counterpartID int64, body string) (*Message, error)
	}
)

// IsTemp not yet confirmed
func (m *Message) IsTemp() bool {
	return strings.HasPrefix(m.ID, TempMessagePrefix)
}
