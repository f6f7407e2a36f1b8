package twilio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/irishmetals/skipdispatch/internal/core"
)

type fakeAPI struct {
	params []*twilioapi.CreateMessageParams
	err    error
}

func (f *fakeAPI) CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioapi.ApiV2010Message{Sid: &sid}, nil
}

func TestNewSender_RequiresCredentials(t *testing.T) {
	_, err := NewSender(Config{From: "+353861234567"})
	require.ErrorIs(t, err, ErrNotConfigured)

	s, err := NewSender(Config{AccountSID: "AC1", AuthToken: "tok", From: "+353861234567"})
	require.NoError(t, err)
	assert.Equal(t, ChannelSMS, s.Channel())
}

func TestSender_SMS(t *testing.T) {
	api := &fakeAPI{}
	s, err := newSender(api, Config{From: "086 123 4567"})
	require.NoError(t, err)

	sid, err := s.Send(context.Background(), core.TextMessage{To: "087-123 4567", Body: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "SM123", sid)

	require.Len(t, api.params, 1)
	assert.Equal(t, "+353871234567", *api.params[0].To)
	assert.Equal(t, "+353861234567", *api.params[0].From)
	assert.Equal(t, "hello", *api.params[0].Body)
}

func TestSender_CountryCodeAppliesToRecipient(t *testing.T) {
	api := &fakeAPI{}
	s, err := newSender(api, Config{From: "07700 900123", CountryCode: "+44"})
	require.NoError(t, err)

	_, err = s.Send(context.Background(), core.TextMessage{To: "07700 900456", Body: "job ready"})
	require.NoError(t, err)

	require.Len(t, api.params, 1)
	assert.Equal(t, "+447700900123", *api.params[0].From)
	assert.Equal(t, "+447700900456", *api.params[0].To)
}

func TestSender_WhatsApp(t *testing.T) {
	api := &fakeAPI{}
	s, err := newSender(api, Config{From: "whatsapp:+14155238886", Channel: "WhatsApp"})
	require.NoError(t, err)
	assert.Equal(t, ChannelWhatsApp, s.Channel())

	_, err = s.Send(context.Background(), core.TextMessage{To: "+353871234567", Body: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "whatsapp:+353871234567", *api.params[0].To)
	assert.Equal(t, "whatsapp:+14155238886", *api.params[0].From)
}

func TestSender_Errors(t *testing.T) {
	api := &fakeAPI{err: errors.New("21211 invalid To")}
	s, err := newSender(api, Config{From: "+353861234567"})
	require.NoError(t, err)

	_, err = s.Send(context.Background(), core.TextMessage{To: "+353871234567"})
	require.ErrorContains(t, err, "21211")

	_, err = s.Send(context.Background(), core.TextMessage{To: " "})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Send(ctx, core.TextMessage{To: "+353871234567"})
	require.ErrorIs(t, err, context.Canceled)

	_, err = newSender(api, Config{From: "+1", Channel: "pigeon"})
	require.Error(t, err)
}
