package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/irishmetals/skipdispatch/internal/core"
	"github.com/irishmetals/skipdispatch/internal/docket"
	"github.com/irishmetals/skipdispatch/internal/domain/lifecycle"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/mocks"
	"github.com/irishmetals/skipdispatch/internal/observability/metrics"
)

type countingRecorder struct {
	deliveries      map[string]int
	historyFailures int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{deliveries: map[string]int{}}
}

func (c *countingRecorder) ObserveTransition(string, string, time.Duration) {}
func (c *countingRecorder) CountDelivery(channel, result string)            { c.deliveries[channel+"/"+result]++ }
func (c *countingRecorder) CountHistoryFailure()                             { c.historyFailures++ }

var _ metrics.Recorder = (*countingRecorder)(nil)

func TestDriverMessage(t *testing.T) {
	tests := []struct {
		name     string
		customer *model.Customer
		want     string
	}{
		{
			name:     "with address",
			customer: acmeCustomer(),
			want:     "🚛 New Job Available!\n\nCustomer: Acme Ltd\nAddress: 1 Quay St, Dublin\nDocket: D1\n\nOpen the Driver Portal to view details.",
		},
		{
			name:     "without address",
			customer: &model.Customer{Name: "Acme Ltd"},
			want:     "🚛 New Job Available!\n\nCustomer: Acme Ltd\nDocket: D1\n\nOpen the Driver Portal to view details.",
		},
		{
			name: "unknown customer",
			want: "🚛 New Job Available!\n\nCustomer: Unknown Customer\nDocket: D1\n\nOpen the Driver Portal to view details.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DriverMessage(tt.customer, "D1"))
		})
	}
}

func TestNotifyDriver_NoTransportConfigured(t *testing.T) {
	rec := newCountingRecorder()
	failures := &failureCapture{}
	d := NewNotificationDispatcher(NotificationDispatcherOptions{
		Observers: NotificationObservers{Metrics: rec, Failures: failures},
	})

	res := d.NotifyDriver(context.Background(), DriverNotice{Job: jobIn(model.JobStatusCreated), Driver: doeDriver()})
	assert.False(t, res.Success)
	assert.Equal(t, "text message transport not configured", res.Error)
	assert.Equal(t, 1, rec.deliveries["sms/error"])
	require.Len(t, failures.payloads, 1)
	assert.Equal(t, "sms", failures.payloads[0].Channel)
}

func TestNotifyDriver_WhatsAppChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockMessageSender(ctrl)
	sender.EXPECT().Channel().Return("whatsapp").AnyTimes()
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("SM1", nil)
	rec := newCountingRecorder()

	d := NewNotificationDispatcher(NotificationDispatcherOptions{
		Transports: NotificationTransports{Messages: sender},
		Observers:  NotificationObservers{Metrics: rec},
	})
	res := d.NotifyDriver(context.Background(), DriverNotice{Job: jobIn(model.JobStatusCreated), Driver: doeDriver()})
	assert.True(t, res.Success)
	assert.Equal(t, "SM1", res.SID)
	assert.Equal(t, 1, rec.deliveries["whatsapp/success"])
}

func TestSendDocket(t *testing.T) {
	completion := &model.Completion{
		ID:            "c1",
		SkipJobID:     testJobID,
		SkipSize:      model.SkipSize12,
		Action:        model.SkipActionDrop,
		DropSize:      sizePtr(model.SkipSize12),
		CompletedTime: testNow,
	}
	data := docket.Data{Job: jobIn(model.JobStatusCompleted), Completion: completion, Customer: acmeCustomer()}

	t.Run("mailer not configured", func(t *testing.T) {
		failures := &failureCapture{}
		d := NewNotificationDispatcher(NotificationDispatcherOptions{
			Observers: NotificationObservers{Failures: failures},
		})
		res := d.SendDocket(context.Background(), data)
		assert.False(t, res.Success)
		require.Len(t, failures.payloads, 1)
		assert.Equal(t, ChannelEmail, failures.payloads[0].Channel)
	})

	t.Run("render failure is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := mocks.NewMockDocketMailer(ctrl)
		renderer := mocks.NewMockDocketRenderer(ctrl)
		renderer.EXPECT().Render(gomock.Any()).Return(nil, errors.New("font missing"))
		failures := &failureCapture{}

		d := NewNotificationDispatcher(NotificationDispatcherOptions{
			Transports: NotificationTransports{Mailer: mailer, Renderer: renderer},
			Observers:  NotificationObservers{Failures: failures},
		})
		res := d.SendDocket(context.Background(), data)
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "font missing")
		require.Len(t, failures.payloads, 1)
		assert.Equal(t, ChannelDocket, failures.payloads[0].Channel)
	})

	t.Run("real renderer attaches a pdf", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := mocks.NewMockDocketMailer(ctrl)
		mailer.EXPECT().SendDocket(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e core.DocketEmail) error {
				assert.Equal(t, "Skip Docket Completed: "+testDocket, e.Subject)
				assert.Equal(t, "%PDF", string(e.Attachment[:4]))
				return nil
			})

		d := NewNotificationDispatcher(NotificationDispatcherOptions{
			Transports: NotificationTransports{Mailer: mailer},
			Config:     NotificationConfig{Clock: func() time.Time { return testNow }},
		})
		res := d.SendDocket(context.Background(), data)
		assert.True(t, res.Success)
	})
}

func TestHistoryRecorder_SwallowsStorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStatusHistoryRepository(ctrl)
	repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
	rec := newCountingRecorder()

	r := NewHistoryRecorder(HistoryRecorderOptions{Repo: repo, Metrics: rec})
	old := model.JobStatusCreated
	assert.NotPanics(t, func() {
		r.Record(context.Background(), lifecycle.OpSend, jobIn(model.JobStatusSent), &old)
	})
	assert.Equal(t, 1, rec.historyFailures)
}

func TestHistoryRecorder_FollowsTransitionRules(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStatusHistoryRepository(ctrl)
	var got []*model.StatusHistoryEntry
	repo.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *model.StatusHistoryEntry) error {
			got = append(got, e)
			return nil
		}).Times(2)

	r := NewHistoryRecorder(HistoryRecorderOptions{Repo: repo})
	old := model.JobStatusSent
	ctx := context.Background()

	r.Record(ctx, lifecycle.OpStart, jobIn(model.JobStatusInProgress), &old)
	r.Record(ctx, lifecycle.OpUpdate, jobIn(model.JobStatusSent), &old)
	r.Record(ctx, lifecycle.Operation("archive"), jobIn(model.JobStatusSent), &old)
	r.Record(ctx, lifecycle.OpDelete, jobIn(model.JobStatusSent), &old)

	require.Len(t, got, 2)
	assert.Equal(t, model.JobStatusInProgress, got[0].NewStatus)
	assert.Equal(t, model.ActorDriver, got[0].ChangedBy)
	assert.Equal(t, model.JobStatusSent, *got[0].OldStatus)
	assert.Equal(t, testDocket, *got[0].DocketNo)
	assert.Equal(t, model.JobStatusCancelled, got[1].NewStatus)
	assert.Equal(t, model.ActorOffice, got[1].ChangedBy)
}

func TestHistoryRecorder_RequiresRepo(t *testing.T) {
	assert.Panics(t, func() { NewHistoryRecorder(HistoryRecorderOptions{}) })
}
