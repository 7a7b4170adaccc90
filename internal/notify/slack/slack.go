// Package slack sends high-urgency message notifications to Slack via
// incoming webhooks.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/frontdesk/internal/desk"
)

const (
	maxContentLen = 1000
	httpTimeout   = 10 * time.Second
)

// Notifier posts incoming messages to a Slack webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
	logger     log.Logger
}

// New creates a new Slack notifier. If webhookURL is empty, Send is a no-op.
func New(webhookURL string, logger log.Logger) *Notifier {
	if logger == nil {
		logger = log.Nop()
	}
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: httpTimeout},
		logger:     logger,
	}
}

// Send posts a message notification to the configured Slack webhook.
// If no webhook URL is configured, it returns nil immediately.
func (n *Notifier) Send(ctx context.Context, m *desk.Message) error {
	if n.webhookURL == "" {
		return nil
	}

	msg := buildMessage(m)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req) //nolint:gosec // G704: webhookURL is from trusted config, not user input
	if err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack: webhook returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func buildMessage(m *desk.Message) map[string]any {
	return map[string]any{
		"blocks": []map[string]any{
			headerBlock(m),
			{"type": "divider"},
			fieldsBlock(m),
			contentBlock(m),
			{"type": "divider"},
			contextBlock(m),
		},
	}
}

func headerBlock(m *desk.Message) map[string]any {
	name := "Unknown Customer"
	if m.Customer != nil {
		name = m.Customer.Name
	}
	text := fmt.Sprintf("%s %s message from %s", urgencyEmoji(m.Urgency), m.Urgency, name)

	return map[string]any{
		"type": "header",
		"text": map[string]any{
			"type": "plain_text",
			"text": text,
		},
	}
}

func fieldsBlock(m *desk.Message) map[string]any {
	fields := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Urgency:* %s", m.Urgency),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Status:* %s", m.Status),
		},
	}
	if m.Customer != nil && m.Customer.Email != "" {
		fields = append(fields, map[string]any{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Email:* %s", m.Customer.Email),
		})
	}

	return map[string]any{
		"type":   "section",
		"fields": fields,
	}
}

func contentBlock(m *desk.Message) map[string]any {
	text := truncate(m.Content, maxContentLen)

	return map[string]any{
		"type": "section",
		"text": map[string]any{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Message*\n\n%s", text),
		},
	}
}

func contextBlock(m *desk.Message) map[string]any {
	elements := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("frontdesk • message %s • %s", m.ID, m.CreatedAt.UTC().Format("2006-01-02 15:04 UTC")),
		},
	}

	return map[string]any{
		"type":     "context",
		"elements": elements,
	}
}

func urgencyEmoji(u desk.Urgency) string {
	switch u {
	case desk.UrgencyHigh:
		return "\U0001f534" // red circle
	case desk.UrgencyMedium:
		return "\U0001f7e1" // yellow circle
	default:
		return "\U0001f7e2" // green circle
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
