package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLen is Telegram's limit for a single text message.
const maxMessageLen = 4096

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) SendError(err error) error {
	return b.send(fmt.Sprintf("❌ Error: %v", err))
}

// SendStatus posts the run summary as plain text so group names and URLs need
// no escaping.
func (b *Bot) SendStatus(message string) error {
	return b.send("ℹ️ " + message)
}

func (b *Bot) send(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, truncate(text, maxMessageLen))
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	return err
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit-1]), "\n") + "…"
}
