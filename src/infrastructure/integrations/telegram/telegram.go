// Package telegram is the chat-transport adapter. It turns Telegram
// updates into assistant turns and delivers the replies; the core never
// imports it.
package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ragbot/src/core/assistant"
	"ragbot/src/infrastructure/log"
)

const (
	greeting     = "Hi! How can I help?"
	clearedReply = "Okay, starting over!"
)

// Bot routes Telegram traffic to the assistant. It works both from a
// webhook (HandleUpdate called by the HTTP handler) and from long
// polling (Poll).
type Bot struct {
	api       *tgbotapi.BotAPI
	assistant *assistant.Service
}

func NewBot(token string, svc *assistant.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Info("telegram bot authorized", "username", api.Self.UserName)
	return &Bot{api: api, assistant: svc}, nil
}

// HandleUpdate processes one inbound update. Errors are logged, never
// returned: a bad update must not fail the webhook delivery.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			b.reply(chatID, greeting)
		case "clear":
			b.assistant.Reset(chatID)
			b.reply(chatID, clearedReply)
		}
		return
	}

	query := strings.TrimSpace(update.Message.Text)
	if query == "" {
		return
	}

	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Debug("failed to send typing action", "chat_id", chatID, "error", err.Error())
	}

	b.reply(chatID, b.assistant.HandleTurn(ctx, chatID, query))
}

// Poll consumes updates via long polling until ctx is canceled. Each
// conversation's turn blocks only its own update; updates are handled
// concurrently so one slow completion does not stall other chats.
func (b *Bot) Poll(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			go b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error(err, "failed to send telegram message", "chat_id", chatID)
	}
}
