package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Dispatcher is the set of operations the bot can trigger.
type Dispatcher interface {
	SendDaily(ctx context.Context) bool
	Preview(ctx context.Context) (string, bool)
	SendOpenNotice(ctx context.Context) bool
	SendCloseNotice(ctx context.Context) bool
}

// Bot answers trigger commands from allowed Telegram chats.
type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher Dispatcher
	allowed    map[int64]bool // empty allows every chat
}

func New(api *tgbotapi.BotAPI, d Dispatcher, allowedChats []int64) *Bot {
	allowed := make(map[int64]bool, len(allowedChats))
	for _, id := range allowedChats {
		allowed[id] = true
	}
	return &Bot{api: api, dispatcher: d, allowed: allowed}
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "send", Description: "오늘의 주문 내역 전송"},
		tgbotapi.BotCommand{Command: "preview", Description: "전송할 메시지 미리보기"},
		tgbotapi.BotCommand{Command: "open", Description: "주문 시작 알림 전송"},
		tgbotapi.BotCommand{Command: "close", Description: "주문 마감 알림 전송"},
	)
	_, err := b.api.Request(cfg)
	return err
}

// Start polls updates until Stop is called.
func (b *Bot) Start(ctx context.Context) {
	if err := b.setBotCommands(); err != nil {
		log.Printf("set bot commands: %v", err)
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		msg := update.Message
		if msg == nil || !msg.IsCommand() {
			continue
		}
		if len(b.allowed) > 0 && !b.allowed[msg.Chat.ID] {
			log.Printf("ignoring /%s from chat %d", msg.Command(), msg.Chat.ID)
			continue
		}
		reply := b.handleCommand(ctx, msg.Command())
		if reply == "" {
			continue
		}
		for _, chunk := range splitMessage(reply, maxMessageLength) {
			b.send(msg.Chat.ID, chunk)
		}
	}
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleCommand(ctx context.Context, command string) string {
	switch command {
	case "send":
		return fmt.Sprintf("Message sent successfully: %v", b.dispatcher.SendDaily(ctx))
	case "preview":
		text, ok := b.dispatcher.Preview(ctx)
		if !ok {
			return "오늘은 주문 내역이 없습니다."
		}
		return strings.TrimLeft(text, "\n")
	case "open":
		return fmt.Sprintf("Message sent successfully: %v", b.dispatcher.SendOpenNotice(ctx))
	case "close":
		return fmt.Sprintf("Message sent successfully: %v", b.dispatcher.SendCloseNotice(ctx))
	case "start", "help":
		return "/send - 오늘의 주문 내역 전송\n" +
			"/preview - 미리보기\n" +
			"/open - 주문 시작 알림\n" +
			"/close - 주문 마감 알림"
	default:
		return ""
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}
