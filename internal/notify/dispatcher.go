// Package notify delivers coupon notices over email and an ordered SMS
// provider cascade. Every send is best-effort: failures become outcome
// metadata and log lines, never errors to the spin flow.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zootechx/spinwheel-backend/internal/models"
)

// Status is the terminal state of one channel's delivery attempt.
type Status string

const (
	StatusSent          Status = "sent"
	StatusFailed        Status = "failed"
	StatusNotConfigured Status = "not-configured"
)

// ChannelResult reports how one channel's sub-flow ended.
type ChannelResult struct {
	Status   Status
	Provider string // provider that succeeded, empty otherwise
	Detail   string // provider error detail on failure
}

// Outcome reports both channels for one dispatch.
type Outcome struct {
	Email ChannelResult
	SMS   ChannelResult
}

// EmailSender delivers the coupon email through a transactional provider.
type EmailSender interface {
	Configured() bool
	Send(ctx context.Context, rec models.SpinRecord) error
}

// SMSProvider delivers a text message to a normalized (bare-digit) Indian
// phone number. Providers apply their own country-code formatting.
type SMSProvider interface {
	Name() string
	Configured() bool
	Send(ctx context.Context, phone, message string) error
}

// Dispatcher fans a coupon notice out to email and SMS. The two sub-flows
// run independently: an email failure never blocks the SMS attempt and vice
// versa.
type Dispatcher struct {
	email  EmailSender
	sms    []SMSProvider // priority order, first success wins
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher over the given email sender and SMS
// providers. Either side may be nil/empty; the matching channel then reports
// not-configured.
func NewDispatcher(email EmailSender, providers []SMSProvider, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{email: email, sms: providers, logger: logger}
}

// Dispatch sends the coupon notice for an admitted spin over both channels
// and returns once both sub-flows have finished. It never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, rec models.SpinRecord) Outcome {
	dispatchID := uuid.NewString()

	var out Outcome
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.Email = d.sendEmail(ctx, dispatchID, rec)
	}()
	go func() {
		defer wg.Done()
		out.SMS = d.sendSMS(ctx, dispatchID, rec)
	}()
	wg.Wait()
	return out
}

func (d *Dispatcher) sendEmail(ctx context.Context, dispatchID string, rec models.SpinRecord) (res ChannelResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("email send panicked", zap.String("dispatch_id", dispatchID), zap.Any("panic", r))
			res = ChannelResult{Status: StatusFailed, Detail: fmt.Sprint(r)}
		}
	}()

	if d.email == nil || !d.email.Configured() {
		d.logger.Warn("email not configured, skipping", zap.String("dispatch_id", dispatchID))
		return ChannelResult{Status: StatusNotConfigured}
	}
	if err := d.email.Send(ctx, rec); err != nil {
		d.logger.Error("email send failed",
			zap.String("dispatch_id", dispatchID),
			zap.String("to", rec.Email),
			zap.Error(err),
		)
		return ChannelResult{Status: StatusFailed, Detail: err.Error()}
	}
	d.logger.Info("email sent", zap.String("dispatch_id", dispatchID), zap.String("to", rec.Email))
	return ChannelResult{Status: StatusSent, Provider: "resend"}
}

func (d *Dispatcher) sendSMS(ctx context.Context, dispatchID string, rec models.SpinRecord) (res ChannelResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("sms send panicked", zap.String("dispatch_id", dispatchID), zap.Any("panic", r))
			res = ChannelResult{Status: StatusFailed, Detail: fmt.Sprint(r)}
		}
	}()

	message := fmt.Sprintf(
		"Hi %s! You just won %d%% off on %s with ZooTechX. Your coupon code is %s. Show this at the ZooTechX desk to redeem.",
		rec.Name, rec.Discount, rec.Domain, rec.CouponCode,
	)
	phone := NormalizePhone(rec.Phone)

	attempted := false
	var lastErr error
	for _, p := range d.sms {
		if !p.Configured() {
			continue
		}
		attempted = true
		if err := p.Send(ctx, phone, message); err != nil {
			lastErr = err
			d.logger.Warn("sms provider failed, trying next",
				zap.String("dispatch_id", dispatchID),
				zap.String("provider", p.Name()),
				zap.String("phone", phone),
				zap.Error(err),
			)
			continue
		}
		d.logger.Info("sms sent",
			zap.String("dispatch_id", dispatchID),
			zap.String("provider", p.Name()),
			zap.String("phone", phone),
		)
		return ChannelResult{Status: StatusSent, Provider: p.Name()}
	}

	if !attempted {
		d.logger.Warn("no sms provider configured, skipping", zap.String("dispatch_id", dispatchID))
		return ChannelResult{Status: StatusNotConfigured}
	}
	return ChannelResult{Status: StatusFailed, Detail: lastErr.Error()}
}
