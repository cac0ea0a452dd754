package telegram

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/rs/zerolog/log"
)

const (
	StartText   = "Click below to open AI Content Creator!"
	StartButton = "Open Creator Bot"
)

// Update is the subset of a Bot API update the launcher reacts to
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type sendMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type inlineKeyboardButton struct {
	Text   string      `json:"text"`
	WebApp *webAppInfo `json:"web_app,omitempty"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Bot answers /start with a button that launches the mini-app
type Bot struct {
	token     string
	apiBase   string
	webAppURL string
	secret    string
	client    *http.Client
}

// NewBot creates a launcher bot
func NewBot(cfg config.TelegramConfig) *Bot {
	apiBase := strings.TrimRight(cfg.APIBaseURL, "/")
	if apiBase == "" {
		apiBase = "https://api.telegram.org"
	}
	return &Bot{
		token:     cfg.BotToken,
		apiBase:   apiBase,
		webAppURL: cfg.WebAppURL,
		secret:    cfg.WebhookSecret,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether the bot has both a token and a mini-app URL
func (b *Bot) Configured() bool {
	return b.token != "" && b.webAppURL != ""
}

// Enabled reports whether the webhook may be served. A webhook without a
// secret token would accept forged updates from anyone.
func (b *Bot) Enabled() bool {
	return b.Configured() && b.secret != ""
}

// VerifySecret checks the X-Telegram-Bot-Api-Secret-Token header value
func (b *Bot) VerifySecret(header string) bool {
	if b.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(header), []byte(b.secret)) == 1
}

// HandleUpdate reacts to one webhook update; anything but /start is ignored
func (b *Bot) HandleUpdate(ctx context.Context, update Update) error {
	if update.Message == nil || !isStartCommand(update.Message.Text) {
		return nil
	}

	log.Info().
		Int64("chat_id", update.Message.Chat.ID).
		Int64("update_id", update.UpdateID).
		Msg("Sending mini-app launcher")

	return b.sendMessage(ctx, sendMessageRequest{
		ChatID: update.Message.Chat.ID,
		Text:   StartText,
		ReplyMarkup: &inlineKeyboardMarkup{
			InlineKeyboard: [][]inlineKeyboardButton{{
				{Text: StartButton, WebApp: &webAppInfo{URL: b.webAppURL}},
			}},
		},
	})
}

func isStartCommand(text string) bool {
	cmd, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd == "/start"
}

// sendMessage calls the Bot API sendMessage method
func (b *Bot) sendMessage(ctx context.Context, msg sendMessageRequest) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", b.apiBase, b.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendMessage failed: %w", err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !out.OK {
		if out.Description == "" {
			out.Description = resp.Status
		}
		return errors.New("telegram: " + out.Description)
	}

	return nil
}
