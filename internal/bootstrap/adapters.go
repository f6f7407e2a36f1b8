package bootstrap

import (
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/irishmetals/skipdispatch/config"
	redisadapter "github.com/irishmetals/skipdispatch/internal/adapters/redis"
	"github.com/irishmetals/skipdispatch/internal/adapters/smtpmail"
	"github.com/irishmetals/skipdispatch/internal/adapters/twilio"
	"github.com/irishmetals/skipdispatch/internal/core"
	"github.com/irishmetals/skipdispatch/internal/data"
	"github.com/irishmetals/skipdispatch/internal/docket"
	"github.com/irishmetals/skipdispatch/internal/events"
	"github.com/irishmetals/skipdispatch/internal/service"
)

// buildTransports creates the outbound adapters that are configured. Missing
// credentials leave a transport nil; the dispatcher then reports the
// notification as not sent instead of failing the transition.
func buildTransports(cfg *config.AppConfig, logger *slog.Logger) service.NotificationTransports {
	transports := service.NotificationTransports{
		Renderer: docket.NewRenderer(docket.RendererOptions{Compress: true}),
	}

	sender, err := twilio.NewSender(twilio.Config{
		AccountSID:  cfg.Twilio.AccountSID,
		AuthToken:   cfg.Twilio.AuthToken,
		From:        cfg.Twilio.From(),
		Channel:     cfg.Twilio.Channel,
		CountryCode: cfg.Twilio.CountryCode,
	})
	switch {
	case errors.Is(err, twilio.ErrNotConfigured):
		logger.Warn("twilio not configured; driver messages will not be sent")
	case err != nil:
		logger.Error("failed to initialise twilio sender", "error", err)
	default:
		transports.Messages = sender
	}

	mailer, err := smtpmail.NewMailer(smtpmail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Secure:   cfg.SMTP.Secure,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		To:       cfg.SMTP.To,
		Timeout:  cfg.SMTP.Timeout,
	})
	switch {
	case errors.Is(err, smtpmail.ErrNotConfigured):
		logger.Warn("SMTP not configured; completion dockets will not be emailed",
			"hint", "set SMTP_HOST, SMTP_USER, SMTP_PASS and EMAIL_TO")
	case err != nil:
		logger.Error("failed to initialise SMTP mailer", "error", err)
	default:
		transports.Mailer = mailer
	}

	return transports
}

// buildCompletionLock prefers a Redis lock so concurrent completions are
// serialised across instances.
//
//nolint:ireturn // the lock implementation depends on whether Redis is configured.
func buildCompletionLock(client redis.UniversalClient) core.CompletionLock {
	if client != nil {
		return data.NewRedisCompletionLock(client)
	}
	return data.NewLocalCompletionLock(&data.RealTimeProvider{})
}

// eventWiring is the live event path: a publisher for the lifecycle and,
// when Redis is available, the bus relayed into the local hub.
type eventWiring struct {
	Hub       *events.Hub
	Bus       *redisadapter.EventBus
	Publisher core.JobEventPublisher
}

func buildEventWiring(cfg *config.AppConfig, client redis.UniversalClient, logger *slog.Logger) eventWiring {
	var w eventWiring
	if cfg.IsEventsEnabled() {
		w.Hub = events.NewHub(events.HubOptions{Logger: logger})
	}
	switch {
	case client != nil:
		w.Bus = redisadapter.NewEventBus(client, cfg.Dispatch.EventsChannel, logger)
		w.Publisher = w.Bus
	case w.Hub != nil:
		w.Publisher = events.NewLocalPublisher(w.Hub)
	}
	return w
}
