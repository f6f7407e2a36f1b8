package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/irishmetals/skipdispatch/internal/core"
	"github.com/irishmetals/skipdispatch/internal/docket"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/domain/validation"
	obserrors "github.com/irishmetals/skipdispatch/internal/observability/errors"
	"github.com/irishmetals/skipdispatch/internal/observability/metrics"
	"github.com/irishmetals/skipdispatch/internal/observability/notify"
)

// Delivery channels used for metrics and failure alerts.
const (
	ChannelEmail  = "email"
	ChannelDocket = "docket_pdf"
)

const unknownCustomer = "Unknown Customer"

var (
	errMessagesNotConfigured = errors.New("text message transport not configured")
	errMailerNotConfigured   = errors.New("docket email transport not configured")
	errMissingDriverPhone    = errors.New("driver has no phone number")
)

// DeliveryResult reports one outbound notification. It is advisory: a failed
// delivery never fails the lifecycle operation that triggered it.
type DeliveryResult struct {
	Success bool
	Error   string
	SID     string
}

func failed(err error) DeliveryResult {
	return DeliveryResult{Error: err.Error()}
}

// deliveryFailureNotifier is satisfied by failurenotifier.Service.
type deliveryFailureNotifier interface {
	NotifyDeliveryFailure(ctx context.Context, payload notify.DeliveryFailurePayload)
}

// NotificationTransports are the outbound adapters. Any may be nil.
type NotificationTransports struct {
	Messages core.MessageSender
	Mailer   core.DocketMailer
	Renderer core.DocketRenderer
}

// NotificationConfig holds formatting settings.
type NotificationConfig struct {
	// CountryCode is prefixed to local numbers in failure alerts; defaults to +353.
	CountryCode string
	// Location is the zone docket times are printed in.
	Location *time.Location
	Clock    func() time.Time
}

// NotificationObservers receive logs, metrics and failure alerts.
type NotificationObservers struct {
	Logger   *slog.Logger
	Metrics  metrics.Recorder
	Failures deliveryFailureNotifier
}

// NotificationDispatcherOptions groups dependencies for NotificationDispatcher.
type NotificationDispatcherOptions struct {
	Transports NotificationTransports
	Config     NotificationConfig
	Observers  NotificationObservers
}

// NotificationDispatcher formats and sends the driver job message and the
// office docket email.
type NotificationDispatcher struct {
	messages core.MessageSender
	mailer   core.DocketMailer
	renderer core.DocketRenderer
	cfg      NotificationConfig
	logger   *slog.Logger
	metrics  metrics.Recorder
	failures deliveryFailureNotifier
}

// NewNotificationDispatcher constructs a NotificationDispatcher. A nil
// renderer falls back to the standard docket PDF renderer.
func NewNotificationDispatcher(opts NotificationDispatcherOptions) *NotificationDispatcher {
	cfg := opts.Config
	if cfg.CountryCode == "" {
		cfg.CountryCode = validation.DefaultCountryCode
	}
	if cfg.Location == nil {
		cfg.Location = docket.LoadLocation(docket.DefaultTimezone)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	renderer := opts.Transports.Renderer
	if renderer == nil {
		renderer = docket.NewRenderer(docket.RendererOptions{Compress: true})
	}

	logger := opts.Observers.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := opts.Observers.Metrics
	if rec == nil {
		rec = metrics.Noop{}
	}

	return &NotificationDispatcher{
		messages: opts.Transports.Messages,
		mailer:   opts.Transports.Mailer,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger.With("component", "notification_dispatcher"),
		metrics:  rec,
		failures: opts.Observers.Failures,
	}
}

// DriverMessage builds the new-job text for a driver. Address is omitted when unknown.
func DriverMessage(customer *model.Customer, docketNo string) string {
	name := unknownCustomer
	var address string
	if customer != nil {
		if customer.Name != "" {
			name = customer.Name
		}
		if customer.Address != nil {
			address = strings.TrimSpace(*customer.Address)
		}
	}

	var b strings.Builder
	b.WriteString("🚛 New Job Available!\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", name)
	if address != "" {
		fmt.Fprintf(&b, "Address: %s\n", address)
	}
	fmt.Fprintf(&b, "Docket: %s\n\nOpen the Driver Portal to view details.", docketNo)
	return b.String()
}

// DriverNotice is the input to NotifyDriver. DriverLink is appended when set.
type DriverNotice struct {
	Job        *model.SkipJob
	Customer   *model.Customer
	Driver     *model.Driver
	DriverLink string
}

// NotifyDriver sends the job message to the assigned driver.
func (d *NotificationDispatcher) NotifyDriver(ctx context.Context, n DriverNotice) DeliveryResult {
	channel := d.messageChannel()
	var phone string
	if n.Driver != nil && n.Driver.Phone != nil {
		phone = strings.TrimSpace(*n.Driver.Phone)
	}

	var err error
	switch {
	case d.messages == nil:
		err = errMessagesNotConfigured
	case phone == "":
		err = errMissingDriverPhone
	}
	if err != nil {
		return d.fail(ctx, n.Job, channel, phone, err)
	}

	body := DriverMessage(n.Customer, n.Job.DocketNo)
	if n.DriverLink != "" {
		body += "\n\n" + n.DriverLink
	}

	sid, err := d.messages.Send(context.WithoutCancel(ctx), core.TextMessage{To: phone, Body: body})
	if err != nil {
		return d.fail(ctx, n.Job, channel, phone, err)
	}

	d.metrics.CountDelivery(channel, metrics.ResultSuccess)
	d.logger.InfoContext(ctx, "driver notified",
		"job_id", n.Job.ID,
		"docket_no", n.Job.DocketNo,
		"channel", channel,
		"sid", sid)
	return DeliveryResult{Success: true, SID: sid}
}

// RenderDocket renders the completion docket PDF. Timezone and generation
// time are filled from the dispatcher's config when unset.
func (d *NotificationDispatcher) RenderDocket(data docket.Data) ([]byte, error) {
	data = d.withDefaults(data)
	pdf, err := d.renderer.Render(data)
	if err != nil {
		return nil, fmt.Errorf("render docket %s: %w", data.DocketNo(), err)
	}
	return pdf, nil
}

// SendDocket renders the docket and emails it to the office.
func (d *NotificationDispatcher) SendDocket(ctx context.Context, data docket.Data) DeliveryResult {
	data = d.withDefaults(data)
	if d.mailer == nil {
		return d.fail(ctx, data.Job, ChannelEmail, "", errMailerNotConfigured)
	}

	pdf, err := d.RenderDocket(data)
	if err != nil {
		return d.fail(ctx, data.Job, ChannelDocket, "", err)
	}

	html, err := docket.RenderEmailHTML(data)
	if err != nil {
		return d.fail(ctx, data.Job, ChannelEmail, "", fmt.Errorf("render docket email: %w", err))
	}

	email := core.DocketEmail{
		Subject:        docket.EmailSubject(data.DocketNo()),
		HTML:           html,
		AttachmentName: docket.AttachmentName(data.DocketNo()),
		Attachment:     pdf,
	}
	if err := d.mailer.SendDocket(context.WithoutCancel(ctx), email); err != nil {
		return d.fail(ctx, data.Job, ChannelEmail, "", err)
	}

	d.metrics.CountDelivery(ChannelEmail, metrics.ResultSuccess)
	d.logger.InfoContext(ctx, "docket emailed", "docket_no", data.DocketNo(), "bytes", len(pdf))
	return DeliveryResult{Success: true}
}

func (d *NotificationDispatcher) withDefaults(data docket.Data) docket.Data {
	if data.Location == nil {
		data.Location = d.cfg.Location
	}
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = d.cfg.Clock()
	}
	return data
}

func (d *NotificationDispatcher) messageChannel() string {
	if d.messages == nil {
		return "sms"
	}
	return d.messages.Channel()
}

func (d *NotificationDispatcher) fail(
	ctx context.Context,
	job *model.SkipJob,
	channel, recipient string,
	err error,
) DeliveryResult {
	d.metrics.CountDelivery(channel, metrics.ResultError)

	var jobID, docketNo string
	if job != nil {
		jobID, docketNo = job.ID, job.DocketNo
	}
	d.logger.WarnContext(ctx, "notification not delivered",
		"job_id", jobID,
		"docket_no", docketNo,
		"channel", channel,
		"error", err)

	if d.failures != nil {
		if recipient != "" {
			recipient = validation.FormatPhoneNumber(recipient, d.cfg.CountryCode)
		}
		d.failures.NotifyDeliveryFailure(context.WithoutCancel(ctx), notify.DeliveryFailurePayload{
			JobID:      jobID,
			DocketNo:   docketNo,
			Channel:    channel,
			Recipient:  recipient,
			Error:      err.Error(),
			ErrorClass: obserrors.Classify(err),
			Severity:   severityFor(channel),
			OccurredAt: d.cfg.Clock().UTC(),
		})
	}
	return failed(err)
}

// A docket that never reaches the office is the costlier miss.
func severityFor(channel string) string {
	if channel == ChannelEmail || channel == ChannelDocket {
		return notify.SeverityCritical
	}
	return notify.SeverityWarning
}
