package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/irishmetals/skipdispatch/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error when webhook url missing")
	}
}

func TestFormatMessageIncludesFields(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
		Channel:    "#dispatch",
		Username:   "bot",
		Timeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.DeliveryFailurePayload{
		JobID:      "job-1",
		DocketNo:   "150125-0001-IMR",
		Channel:    "sms",
		Recipient:  "+353871234567",
		Error:      "twilio: 21211 invalid 'To' number",
		ErrorClass: "client_restclienterror",
	})

	if msg.Username != "bot" {
		t.Fatalf("expected username to be preserved, got %v", msg.Username)
	}
	if msg.Channel != "#dispatch" {
		t.Fatalf("expected channel to be set, got %v", msg.Channel)
	}

	text := msg.Text
	if !containsAll(text, []string{
		"Notification delivery failed", "(sms)", "150125-0001-IMR (job-1)", "+353871234567",
		"invalid 'To' number", "client_restclienterror", "Severity: warning",
	}) {
		t.Fatalf("message text missing fields: %s", text)
	}
}

func TestFormatJobValuePermutations(t *testing.T) {
	tcs := []struct {
		name   string
		jobID  string
		docket string
		prefix string
		want   string
	}{
		{
			name:   "docket with link",
			jobID:  "job-1",
			docket: "150125-0001-IMR",
			prefix: "https://dispatch.example/office/skips",
			want:   "<https://dispatch.example/office/skips/job-1|150125-0001-IMR>",
		},
		{
			name:   "id only with link",
			jobID:  "job-2",
			prefix: "https://dispatch.example/office/skips",
			want:   "<https://dispatch.example/office/skips/job-2|job-2>",
		},
		{
			name:   "docket and id without link",
			jobID:  "job-3",
			docket: "150125-0003-IMR",
			prefix: "not a url",
			want:   "150125-0003-IMR (job-3)",
		},
		{
			name:   "docket only",
			docket: "150125-0004-IMR",
			prefix: "https://dispatch.example/office/skips",
			want:   "150125-0004-IMR",
		},
		{
			name: "empty inputs",
			want: "",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(Config{
				WebhookURL:   "https://hooks.slack.com/services/test",
				JobURLPrefix: tc.prefix,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := client.formatJobValue(tc.jobID, tc.docket)
			if got != tc.want {
				t.Fatalf("formatJobValue(%q,%q) = %q, want %q", tc.jobID, tc.docket, got, tc.want)
			}
		})
	}
}

func TestFormatMessageEscapesRecipient(t *testing.T) {
	client, err := NewClient(Config{WebhookURL: "https://hooks.slack.com/services/test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.DeliveryFailurePayload{Recipient: "Office <dispatch@example.ie>"})
	text := msg.Text
	if !strings.Contains(text, "Office &lt;dispatch@example.ie&gt;") {
		t.Fatalf("expected escaped recipient, got: %s", text)
	}
}

func TestSendDeliveryFailureRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if calls.Add(1) == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL, RetryLimit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.SendDeliveryFailure(context.Background(), notify.DeliveryFailurePayload{Channel: "email"}); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestSendDeliveryFailureReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no_service", http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = client.SendDeliveryFailure(context.Background(), notify.DeliveryFailurePayload{})
	if err == nil || !strings.Contains(err.Error(), "no_service") {
		t.Fatalf("expected webhook error with body, got %v", err)
	}
}

func TestFormatMessageSortsMetadata(t *testing.T) {
	client, err := NewClient(Config{WebhookURL: "https://hooks.slack.com/services/test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.DeliveryFailurePayload{
		Metadata:   map[string]string{"truck": "07-D-1234", "customer": "Acme Ltd"},
		OccurredAt: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
	})
	want := "• Metadata:\n    • customer: Acme Ltd\n    • truck: 07-D-1234\n• Timestamp: 2025-01-15T09:30:00Z"
	if !strings.HasSuffix(msg.Text, want) {
		t.Fatalf("unexpected metadata block: %q", msg.Text)
	}
}

func containsAll(text string, substrs []string) bool {
	for _, s := range substrs {
		if !strings.Contains(text, s) {
			return false
		}
	}
	return true
}
