package testutil

import (
	"context"
	"sync"
)

// SentMessage is one message captured by the recording bot
type SentMessage struct {
	ChatID int64
	Text   string
}

// RecordingBot captures outgoing bot messages for assertions
type RecordingBot struct {
	mu       sync.Mutex
	Messages []SentMessage
	Err      error // returned from SendMessage when set
}

// NewRecordingBot creates an empty recorder
func NewRecordingBot() *RecordingBot {
	return &RecordingBot{}
}

// SendMessage records the outgoing message
func (b *RecordingBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	b.Messages = append(b.Messages, SentMessage{ChatID: chatID, Text: text})
	return nil
}

// Last returns the most recently sent message
func (b *RecordingBot) Last() (SentMessage, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.Messages) == 0 {
		return SentMessage{}, false
	}
	return b.Messages[len(b.Messages)-1], true
}
