package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// NotifyChannelSMS texts drivers from TWILIO_PHONE_NUMBER.
	NotifyChannelSMS = "sms"
	// NotifyChannelWhatsApp messages drivers from TWILIO_WHATSAPP_NUMBER.
	NotifyChannelWhatsApp = "whatsapp"

	defaultCountryCode     = "+353"
	defaultEventsChannel   = "skipdispatch:job-events"
	defaultDocketTimezone  = "Europe/Dublin"
	defaultCompletionLock  = 30 * time.Second
	defaultEmailFromName   = "Irish Metals"
	defaultWhatsAppSandbox = "whatsapp:+14155238886"
)

// YardConfig is where picked skips are returned to.
type YardConfig struct {
	Lat float64 `env:"YARD_LAT" envDefault:"0"`
	Lng float64 `env:"YARD_LNG" envDefault:"0"`
}

// IsSet reports whether a yard position was configured.
func (y YardConfig) IsSet() bool {
	return y.Lat != 0 || y.Lng != 0
}

// Validate checks the coordinates are on the globe.
func (y YardConfig) Validate() error {
	if math.IsNaN(y.Lat) || y.Lat < -90 || y.Lat > 90 {
		return fmt.Errorf("YARD_LAT %v must be between -90 and 90", y.Lat)
	}
	if math.IsNaN(y.Lng) || y.Lng < -180 || y.Lng > 180 {
		return fmt.Errorf("YARD_LNG %v must be between -180 and 180", y.Lng)
	}
	return nil
}

// TwilioConfig holds credentials for driver text messages.
type TwilioConfig struct {
	AccountSID     string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken      string `env:"TWILIO_AUTH_TOKEN"`
	PhoneNumber    string `env:"TWILIO_PHONE_NUMBER"`
	WhatsAppNumber string `env:"TWILIO_WHATSAPP_NUMBER"     envDefault:"whatsapp:+14155238886"`
	Channel        string `env:"NOTIFY_CHANNEL"             envDefault:"sms"`
	CountryCode    string `env:"PHONE_DEFAULT_COUNTRY_CODE" envDefault:"+353"`
}

// Sanitize normalises the channel and country code.
func (c *TwilioConfig) Sanitize() {
	c.AccountSID = strings.TrimSpace(c.AccountSID)
	c.AuthToken = strings.TrimSpace(c.AuthToken)
	c.PhoneNumber = strings.TrimSpace(c.PhoneNumber)
	c.WhatsAppNumber = strings.TrimSpace(c.WhatsAppNumber)
	if c.WhatsAppNumber == "" {
		c.WhatsAppNumber = defaultWhatsAppSandbox
	}
	c.Channel = strings.ToLower(strings.TrimSpace(c.Channel))
	if c.Channel != NotifyChannelWhatsApp {
		c.Channel = NotifyChannelSMS
	}
	c.CountryCode = strings.TrimSpace(c.CountryCode)
	if c.CountryCode == "" {
		c.CountryCode = defaultCountryCode
	}
	if !strings.HasPrefix(c.CountryCode, "+") {
		c.CountryCode = "+" + c.CountryCode
	}
}

// From returns the sending address for the selected channel.
func (c TwilioConfig) From() string {
	if c.Channel == NotifyChannelWhatsApp {
		return c.WhatsAppNumber
	}
	return c.PhoneNumber
}

// IsConfigured reports whether messages can be sent.
func (c TwilioConfig) IsConfigured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From() != ""
}

// SMTPConfig holds the office mailbox used for completion dockets.
type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT"       envDefault:"465"`
	Secure   bool          `env:"SMTP_SECURE"     envDefault:"true"`
	User     string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASS"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT"    envDefault:"15s"`
	To       string        `env:"EMAIL_TO"`
	From     string        `env:"EMAIL_FROM"`
	FromName string        `env:"EMAIL_FROM_NAME" envDefault:"Irish Metals"`
}

// Sanitize trims values and derives the sender from SMTP_USER when unset.
func (c *SMTPConfig) Sanitize() {
	c.Host = strings.TrimSpace(c.Host)
	c.User = strings.TrimSpace(c.User)
	c.To = strings.TrimSpace(c.To)
	c.From = strings.TrimSpace(c.From)
	if c.From == "" {
		c.From = c.User
	}
	if c.FromName = strings.TrimSpace(c.FromName); c.FromName == "" {
		c.FromName = defaultEmailFromName
	}
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = 465
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
}

// IsConfigured reports whether dockets can be emailed.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.User != "" && c.Password != "" && c.To != ""
}

// DispatchConfig tunes the job lifecycle.
type DispatchConfig struct {
	// CompletionLockTTL bounds how long a crashed completion holds a job token.
	CompletionLockTTL time.Duration `env:"COMPLETION_LOCK_TTL" envDefault:"30s"`
	// EventsChannel is the Redis pub/sub channel for live job events.
	EventsChannel string `env:"EVENTS_CHANNEL" envDefault:"skipdispatch:job-events"`
	// DocketTimezone renders completion times on dockets and emails.
	DocketTimezone string `env:"DOCKET_TIMEZONE" envDefault:"Europe/Dublin"`
}

// Sanitize applies defaults.
func (c *DispatchConfig) Sanitize() {
	if c.CompletionLockTTL < time.Second {
		c.CompletionLockTTL = defaultCompletionLock
	}
	if c.EventsChannel = strings.TrimSpace(c.EventsChannel); c.EventsChannel == "" {
		c.EventsChannel = defaultEventsChannel
	}
	if c.DocketTimezone = strings.TrimSpace(c.DocketTimezone); c.DocketTimezone == "" {
		c.DocketTimezone = defaultDocketTimezone
	}
}

// Validate checks the settings the lifecycle cannot run without.
func (c *AppConfig) Validate() error {
	var errs []error
	if err := c.Yard.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := time.LoadLocation(c.Dispatch.DocketTimezone); err != nil {
		errs = append(errs, fmt.Errorf("DOCKET_TIMEZONE: %w", err))
	}
	if _, err := c.GetEnabledServices(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.HTTP.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
