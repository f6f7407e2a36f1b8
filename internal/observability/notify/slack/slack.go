package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/irishmetals/skipdispatch/internal/observability/notify"
)

// Config captures the subset of Slack webhook behaviour we need.
type Config struct {
	WebhookURL string
	Channel    string
	Username   string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
	// JobURLPrefix links the docket to the office job page, e.g.
	// https://dispatch.example.ie/office/skips.
	JobURLPrefix string
}

// Client delivers delivery failure alerts to a Slack webhook.
type Client struct {
	webhookURL   string
	channel      string
	username     string
	retryLimit   int
	jobURLPrefix string
	client       *http.Client
}

// NewClient builds a Slack webhook client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		webhookURL:   webhookURL,
		channel:      strings.TrimSpace(cfg.Channel),
		username:     fallbackString(strings.TrimSpace(cfg.Username), "skipdispatch"),
		retryLimit:   retries,
		jobURLPrefix: strings.TrimSpace(cfg.JobURLPrefix),
		client:       hc,
	}, nil
}

// message is the incoming-webhook body.
type message struct {
	Text     string `json:"text"`
	Username string `json:"username"`
	Channel  string `json:"channel,omitempty"`
}

var slackEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// SendDeliveryFailure posts the failure to the webhook, retrying with a
// linear backoff of 200ms per attempt.
func (c *Client) SendDeliveryFailure(ctx context.Context, payload notify.DeliveryFailurePayload) error {
	body, err := json.Marshal(c.formatMessage(payload))
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	for attempt := 0; ; attempt++ {
		err = c.post(ctx, body)
		if err == nil || attempt >= c.retryLimit {
			return err
		}
		timer := time.NewTimer(time.Duration(attempt+1) * 200 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}

	// Slack answers errors with a short plain-text reason such as "no_service".
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if closeErr := resp.Body.Close(); closeErr != nil {
		readErr = errors.Join(readErr, fmt.Errorf("close response body: %w", closeErr))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	if readErr != nil {
		return fmt.Errorf("read slack response: %w", readErr)
	}
	return nil
}

func (c *Client) formatMessage(payload notify.DeliveryFailurePayload) message {
	var b strings.Builder

	b.WriteString("*Notification delivery failed*")
	if payload.Channel != "" {
		fmt.Fprintf(&b, " (%s)", payload.Channel)
	}
	b.WriteByte('\n')

	writeField(&b, "Severity", fallbackString(payload.Severity, notify.SeverityWarning))
	writeField(&b, "Job", c.formatJobValue(payload.JobID, payload.DocketNo))
	writeField(&b, "Recipient", slackEscaper.Replace(payload.Recipient))
	writeField(&b, "Error class", payload.ErrorClass)
	writeField(&b, "Error", slackEscaper.Replace(payload.Error))

	if len(payload.Metadata) > 0 {
		b.WriteString("• Metadata:\n")
		for _, k := range slices.Sorted(maps.Keys(payload.Metadata)) {
			fmt.Fprintf(&b, "    • %s: %s\n", k, payload.Metadata[k])
		}
	}

	ts := payload.OccurredAt
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString("• Timestamp: " + ts.UTC().Format(time.RFC3339))

	return message{Text: b.String(), Username: c.username, Channel: c.channel}
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "• %s: %s\n", label, value)
}

// formatJobValue shows the docket number, linked to the job when a prefix is set.
func (c *Client) formatJobValue(jobID, docketNo string) string {
	rawID := strings.TrimSpace(jobID)
	id := slackEscaper.Replace(rawID)
	docket := slackEscaper.Replace(strings.TrimSpace(docketNo))

	label := fallbackString(docket, id)
	switch {
	case label == "":
		return ""
	case c.jobLink(rawID) != "":
		return fmt.Sprintf("<%s|%s>", c.jobLink(rawID), label)
	case docket != "" && id != "":
		return fmt.Sprintf("%s (%s)", docket, id)
	default:
		return label
	}
}

func (c *Client) jobLink(jobID string) string {
	if jobID == "" || c.jobURLPrefix == "" {
		return ""
	}
	u, err := url.Parse(c.jobURLPrefix)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.JoinPath(jobID).String()
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
