package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Twilio sends through the Twilio Messages API (international fallback).
type Twilio struct {
	client *twilio.RestClient
	from   string
	logger *zap.Logger
}

// NewTwilio creates the Twilio provider. Missing credentials or sender
// number leave it unconfigured.
func NewTwilio(accountSID, authToken, from string, logger *zap.Logger) *Twilio {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Twilio{from: from, logger: logger}
	if accountSID != "" && authToken != "" {
		t.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
	}
	return t
}

func (t *Twilio) Name() string { return "twilio" }

func (t *Twilio) Configured() bool { return t.client != nil && t.from != "" }

func (t *Twilio) Send(_ context.Context, phone, message string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetBody(message)
	params.SetFrom(t.from)
	params.SetTo(DialNumber(phone))

	msg, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	if msg.Sid != nil {
		t.logger.Info("twilio accepted message", zap.String("sid", *msg.Sid))
	}
	return nil
}
