package telegram

import (
	"encoding/json"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api *tgbotapi.BotAPI
	h   *Handlers
}

// NewBot connects to the Bot API. When webhookURL is set, updates are
// delivered to WebhookHandler.
func NewBot(token, webhookURL string, status StatusSource) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if webhookURL != "" {
		webhook, err := tgbotapi.NewWebhook(webhookURL)
		if err != nil {
			return nil, err
		}
		if _, err := api.Request(webhook); err != nil {
			return nil, err
		}
		log.Printf("telegram: webhook set to %s", webhookURL)
	}
	return &Bot{api: api, h: NewHandlers(api, status)}, nil
}

// API exposes the client for outbound notifications.
func (b *Bot) API() *tgbotapi.BotAPI { return b.api }

// Webhook HTTP handler (registered at /telegram/webhook)
func (b *Bot) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "bad update", 400)
		return
	}
	if update.Message != nil {
		log.Printf("webhook: chat_id=%d text=%q", update.Message.Chat.ID, update.Message.Text)
		go b.h.HandleMessage(update.Message)
	}
	w.WriteHeader(http.StatusOK)
}
