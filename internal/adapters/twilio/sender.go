// Package twilio sends driver notifications as SMS or WhatsApp messages
// through the Twilio Messaging API.
package twilio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/irishmetals/skipdispatch/internal/core"
	"github.com/irishmetals/skipdispatch/internal/domain/validation"
)

// Channel names reported by Sender.Channel.
const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// ErrNotConfigured is returned by NewSender when credentials or the sender
// number are missing.
var ErrNotConfigured = errors.New("twilio is not configured")

// messageCreator is the slice of the Twilio API the sender uses.
type messageCreator interface {
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

// Config holds Twilio credentials and the sending number for one channel.
type Config struct {
	AccountSID string
	AuthToken  string
	From       string
	Channel    string
	// CountryCode is used when From or a recipient is in national format.
	CountryCode string
}

// Sender implements core.MessageSender.
type Sender struct {
	api         messageCreator
	from        string
	channel     string
	countryCode string
}

var _ core.MessageSender = (*Sender)(nil)

// NewSender builds a sender backed by the Twilio REST client.
func NewSender(cfg Config) (*Sender, error) {
	if strings.TrimSpace(cfg.AccountSID) == "" || strings.TrimSpace(cfg.AuthToken) == "" ||
		strings.TrimSpace(cfg.From) == "" {
		return nil, ErrNotConfigured
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newSender(client.Api, cfg)
}

func newSender(api messageCreator, cfg Config) (*Sender, error) {
	channel := strings.ToLower(strings.TrimSpace(cfg.Channel))
	if channel == "" {
		channel = ChannelSMS
	}
	if channel != ChannelSMS && channel != ChannelWhatsApp {
		return nil, fmt.Errorf("unsupported twilio channel %q", cfg.Channel)
	}
	return &Sender{
		api:         api,
		from:        address(channel, cfg.From, cfg.CountryCode),
		channel:     channel,
		countryCode: strings.TrimSpace(cfg.CountryCode),
	}, nil
}

// Channel reports sms or whatsapp.
func (s *Sender) Channel() string { return s.channel }

// Send submits msg and returns the Twilio message SID. The Twilio client has
// no context support, so ctx is only checked before the call.
func (s *Sender) Send(ctx context.Context, msg core.TextMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	to := address(s.channel, msg.To, s.countryCode)
	if to == "" {
		return "", errors.New("recipient is required")
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(msg.Body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

func address(channel, number, countryCode string) string {
	if channel == ChannelWhatsApp {
		return validation.FormatWhatsAppAddress(number, countryCode)
	}
	return validation.FormatPhoneNumber(number, countryCode)
}
