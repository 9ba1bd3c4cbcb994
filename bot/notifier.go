package bot

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects messages longer than this many characters.
const maxMessageLength = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramPoster mirrors dispatcher messages into a Telegram chat.
type TelegramPoster struct {
	api    sender
	chatID int64
}

func NewTelegramPoster(api *tgbotapi.BotAPI, chatID int64) *TelegramPoster {
	return &TelegramPoster{api: api, chatID: chatID}
}

// Post sends text as plain messages, split on line boundaries when too long.
func (p *TelegramPoster) Post(ctx context.Context, text string) bool {
	for _, chunk := range splitMessage(strings.TrimLeft(text, "\n"), maxMessageLength) {
		if ctx.Err() != nil {
			log.Printf("telegram post: %v", ctx.Err())
			return false
		}
		if _, err := p.api.Send(tgbotapi.NewMessage(p.chatID, chunk)); err != nil {
			log.Printf("telegram post: %v", err)
			return false
		}
	}
	return true
}

// splitMessage cuts text into chunks of at most limit runes, preferring line breaks.
func splitMessage(text string, limit int) []string {
	var chunks []string
	var cur []rune
	for _, line := range strings.SplitAfter(text, "\n") {
		r := []rune(line)
		if len(cur)+len(r) > limit && len(cur) > 0 {
			chunks = append(chunks, string(cur))
			cur = nil
		}
		for len(r) > limit {
			chunks = append(chunks, string(r[:limit]))
			r = r[limit:]
		}
		cur = append(cur, r...)
	}
	if len(cur) > 0 {
		chunks = append(chunks, string(cur))
	}
	return chunks
}
