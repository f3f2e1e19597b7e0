// Package notification provides implementations for alert delivery
// services.
package notification

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	tb "gopkg.in/tucnak/telebot.v2"
)

const pollingTimeout = 10 * time.Second

// Telegram delivers refresh alerts to a single chat. It implements
// core.Notifier.
type Telegram struct {
	client *tb.Bot
	chat   *tb.Chat
}

// TelegramParams contains all parameters needed to initialize a Telegram instance
type TelegramParams struct {
	Token  string
	ChatID int64
}

// NewTelegram creates and initializes a new Telegram service
func NewTelegram(params TelegramParams) (*Telegram, error) {
	client, err := tb.NewBot(tb.Settings{
		Token:  params.Token,
		Poller: &tb.LongPoller{Timeout: pollingTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{
		client: client,
		chat:   &tb.Chat{ID: params.ChatID},
	}, nil
}

// Notify sends a plain text alert.
func (t *Telegram) Notify(text string) {
	if _, err := t.client.Send(t.chat, text); err != nil {
		log.WithError(err).Error("failed to send telegram notification")
	}
}

// OnError reports a refresh failure.
func (t *Telegram) OnError(err error) {
	t.Notify(fmt.Sprintf("refresh error: %v", err))
}
