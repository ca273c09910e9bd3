package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"queuedesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WhatsAppClient delivers WhatsApp text messages.
type WhatsAppClient interface {
	SendMessage(ctx context.Context, text, phone, correlationID, fromNumber string) (string, error)
}

// EmailClient delivers templated and raw emails.
type EmailClient interface {
	SendEmail(ctx context.Context, template string, to []string, data map[string]interface{}) (string, error)
	SendRawEmail(ctx context.Context, email RawEmail) (string, error)
}

type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}

type RawEmail struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// NewWhatsAppClient picks the adapter for provider; anything but "webhook"
// with a URL logs instead of sending.
func NewWhatsAppClient(provider, url, key string) WhatsAppClient {
	if provider == "webhook" && url != "" {
		return &webhookClient{url: url, token: key, http: &http.Client{Timeout: 5 * time.Second}}
	}
	return logClient{channel: "whatsapp"}
}

// NewEmailClient mirrors NewWhatsAppClient for email.
func NewEmailClient(provider, url, key string) EmailClient {
	if provider == "webhook" && url != "" {
		return &webhookClient{url: url, token: key, http: &http.Client{Timeout: 10 * time.Second}}
	}
	return logClient{channel: "email"}
}

type logClient struct {
	channel string
}

func (c logClient) SendMessage(_ context.Context, text, phone, correlationID, fromNumber string) (string, error) {
	utils.GetLogger().Info("send whatsapp",
		zap.String("to", phone), zap.String("from", fromNumber),
		zap.String("correlationId", correlationID), zap.String("text", text))
	return uuid.New().String(), nil
}

func (c logClient) SendEmail(_ context.Context, template string, to []string, data map[string]interface{}) (string, error) {
	utils.GetLogger().Info("send email",
		zap.Strings("to", to), zap.String("template", template), zap.Any("data", data))
	return uuid.New().String(), nil
}

func (c logClient) SendRawEmail(_ context.Context, email RawEmail) (string, error) {
	utils.GetLogger().Info("send raw email",
		zap.Strings("to", email.To), zap.String("subject", email.Subject),
		zap.Int("attachments", len(email.Attachments)))
	return uuid.New().String(), nil
}

// webhookClient posts JSON to a provider gateway and reads back
// {"id": "..."} as the provider message id.
type webhookClient struct {
	url   string
	token string
	http  *http.Client
}

func (c *webhookClient) post(ctx context.Context, payload map[string]interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider rejected request with status %d", resp.StatusCode)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.ID == "" {
		return "N/I", nil
	}
	return out.ID, nil
}

func (c *webhookClient) SendMessage(ctx context.Context, text, phone, correlationID, fromNumber string) (string, error) {
	return c.post(ctx, map[string]interface{}{
		"channel":       "whatsapp",
		"recipient":     phone,
		"message":       text,
		"correlationId": correlationID,
		"from":          fromNumber,
	})
}

func (c *webhookClient) SendEmail(ctx context.Context, template string, to []string, data map[string]interface{}) (string, error) {
	return c.post(ctx, map[string]interface{}{
		"channel":      "email",
		"template":     template,
		"to":           to,
		"templateData": data,
	})
}

func (c *webhookClient) SendRawEmail(ctx context.Context, email RawEmail) (string, error) {
	return c.post(ctx, map[string]interface{}{
		"channel": "email",
		"raw":     email,
	})
}
