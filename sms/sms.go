package sms

//go generate: mockery --name Sender

import (
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync-api/config"
)

// Sender delivers a text message to a customer phone number. Delivery is
// fire-and-forget: implementations never return an error, only whether the
// carrier accepted the message. Callers decide what a failed send means.
type Sender interface {
	Send(toPhone, body string) bool
}

// New returns a Twilio-backed sender when credentials are configured. With no
// credentials it returns a sender that logs the intended message and reports
// every send as failed, so the rest of the system behaves identically in
// development.
func New(conf *config.Config) Sender {
	if conf.TwilioAccountSID == "" || conf.TwilioAuthToken == "" {
		zap.S().Warn("twilio credentials not set, outbound SMS disabled")
		return &disabledSender{}
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: conf.TwilioAccountSID,
		Password: conf.TwilioAuthToken,
	})
	return &twilioSender{client: client, from: conf.TwilioPhoneNumber}
}

type twilioSender struct {
	client *twilio.RestClient
	from   string
}

func (s *twilioSender) Send(toPhone, body string) bool {
	params := &openapi.CreateMessageParams{}
	params.SetTo(toPhone)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		zap.S().Errorw("failed to send SMS",
			"to", toPhone,
			"body", body,
			"error", err,
		)
		return false
	}
	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	zap.S().Infow("SMS sent",
		"to", toPhone,
		"sid", sid,
	)
	return true
}

type disabledSender struct{}

func (s *disabledSender) Send(toPhone, body string) bool {
	zap.S().Infow("twilio not configured, would send SMS",
		"to", toPhone,
		"body", body,
	)
	return false
}
