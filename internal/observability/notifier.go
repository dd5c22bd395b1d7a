package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Notifier sends fleet alerts to an external channel.
type Notifier interface {
	Notify(alerts []Alert) error
}

// webhookNotifier posts alerts as JSON to an HTTP webhook.
type webhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a Notifier posting to the given webhook URL.
func NewWebhookNotifier(url string) Notifier {
	return &webhookNotifier{
		url:    url,
		client: &http.Client{},
	}
}

type webhookPayload struct {
	Text   string  `json:"text"`
	Alerts []Alert `json:"alerts"`
}

// Notify posts the given alerts. It returns nil without making a request if
// the alerts slice is empty.
func (n *webhookNotifier) Notify(alerts []Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", a.Severity, a.Condition, a.Message))
	}
	payload := webhookPayload{
		Text:   strings.Join(lines, "\n"),
		Alerts: alerts,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting alerts to webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
