package identity

import "context"

// BotMessenger sends messages back to a Telegram chat on behalf of the bot
type BotMessenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}
