package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Telegram posts messages to a Telegram chat via the Bot API.
// A nil Telegram (missing token or chat ID) is a silent no-op, and send
// failures are logged and swallowed: notification delivery must never
// block or fail a financial request.
type Telegram struct {
	token  string
	chatID string
	apiURL string
	client *http.Client
}

// NewTelegram returns a notifier, or nil when the bot is not configured.
func NewTelegram(token, chatID string) *Telegram {
	if token == "" || chatID == "" {
		logrus.Info("Telegram bot token or chat ID not set, notifications disabled")
		return nil
	}
	return &Telegram{
		token:  token,
		chatID: chatID,
		apiURL: "https://api.telegram.org",
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewTelegramWithBase is like NewTelegram with an explicit API base URL.
func NewTelegramWithBase(token, chatID, baseURL string) *Telegram {
	t := NewTelegram(token, chatID)
	if t != nil {
		t.apiURL = baseURL
	}
	return t
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send delivers one HTML-formatted message, best effort.
func (t *Telegram) Send(ctx context.Context, text string) {
	if t == nil {
		return
	}
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		logrus.WithError(err).Error("Telegram notification encode failed")
		return
	}
	url := t.apiURL + "/bot" + t.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logrus.WithError(err).Error("Telegram notification request failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Telegram notification send failed")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		logrus.WithField("status", resp.StatusCode).Error("Telegram notification rejected")
		return
	}
	logrus.Debug("Telegram notification sent")
}
