package spins

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zootechx/spinwheel-backend/internal/models"
	"github.com/zootechx/spinwheel-backend/internal/notify"
)

// Messages returned to the wheel client. The already-spun text is part of the
// API contract; the frontend matches on it.
const (
	MsgMissingFields = "Missing required fields"
	MsgAlreadySpun   = "You have already spun the wheel."
	MsgCouponSent    = "Coupon sent successfully!"
	MsgInternalError = "Internal server error"
)

// Outcome is the terminal state of one spin request.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeMissingFields
	OutcomeAlreadySpun
	OutcomeInternalError
)

// SpinRequest carries the visitor's contact details plus the winning wheel
// segment the client landed on. Discount, domain and coupon code are trusted
// verbatim; the server does not re-validate them against the wheel
// configuration.
type SpinRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Domain     string `json:"domain"`
	Discount   int    `json:"discount"`
	CouponCode string `json:"couponCode"`
}

// Notifier delivers the coupon notice after a spin is admitted.
type Notifier interface {
	Dispatch(ctx context.Context, rec models.SpinRecord) notify.Outcome
}

// Service is the spin eligibility gate: it validates the request, enforces
// one spin per email against the store, persists admitted spins, and hands
// the record to the notifier. Notification results never affect admission.
type Service struct {
	store    *Store
	notifier Notifier
	logger   *zap.Logger

	mu sync.Mutex // serializes the check-and-create step so two requests for the same email cannot both pass
}

// NewService creates the eligibility gate.
func NewService(store *Store, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Spin runs one request through the gate and returns its terminal outcome.
// Unexpected failures never escape: they degrade to OutcomeInternalError.
func (s *Service) Spin(ctx context.Context, req SpinRequest) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("spin panicked", zap.Any("panic", r), zap.String("email", req.Email))
			out = OutcomeInternalError
		}
	}()

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Domain == "" ||
		req.Discount == 0 || req.CouponCode == "" {
		return OutcomeMissingFields
	}

	rec, admitted, err := s.admit(req)
	if err != nil {
		s.logger.Error("persist spin failed", zap.Error(err), zap.String("email", req.Email))
		return OutcomeInternalError
	}
	if !admitted {
		s.logger.Info("repeat spin rejected", zap.String("email", req.Email))
		return OutcomeAlreadySpun
	}

	s.logger.Info("spin admitted",
		zap.Int("id", rec.ID),
		zap.String("email", rec.Email),
		zap.String("coupon", rec.CouponCode),
		zap.Int("discount", rec.Discount),
	)

	// Best-effort: the visitor keeps the coupon even if every channel fails.
	outcome := s.notifier.Dispatch(ctx, rec)
	s.logger.Info("notification dispatched",
		zap.Int("id", rec.ID),
		zap.String("email_status", string(outcome.Email.Status)),
		zap.String("sms_status", string(outcome.SMS.Status)),
		zap.String("sms_provider", outcome.SMS.Provider),
	)
	return OutcomeAccepted
}

// admit performs the duplicate check and record creation under one lock.
func (s *Service) admit(req SpinRequest) (models.SpinRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.store.LoadAll()
	for _, existing := range records {
		if existing.Email == req.Email {
			return models.SpinRecord{}, false, nil
		}
	}

	rec := models.SpinRecord{
		ID:         NextID(records),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Domain:     req.Domain,
		Discount:   req.Discount,
		CouponCode: req.CouponCode,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.SaveAll(append(records, rec)); err != nil {
		return models.SpinRecord{}, false, err
	}
	return rec, true, nil
}
