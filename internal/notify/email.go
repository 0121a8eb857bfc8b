package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/zootechx/spinwheel-backend/internal/models"
)

const fallbackLogoURL = "https://www.zootechx.com/logo.jpg"

// ResendSender sends the coupon email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	logo   string
	logger *zap.Logger
}

// NewResendSender creates a Resend-backed email sender. An empty apiKey or
// from leaves the sender unconfigured, which the dispatcher reports as a
// skip rather than an error.
func NewResendSender(apiKey, from, siteURL string, logger *zap.Logger) *ResendSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ResendSender{from: from, logo: fallbackLogoURL, logger: logger}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	if siteURL != "" {
		s.logo = siteURL + "/Logo.jpg"
	}
	return s
}

// Configured reports whether credentials and a sender address are present.
func (s *ResendSender) Configured() bool {
	return s.client != nil && s.from != ""
}

// Send renders the coupon template and delivers it to the record's email.
func (s *ResendSender) Send(ctx context.Context, rec models.SpinRecord) error {
	html, err := renderCouponHTML(couponEmailData{
		Name:       rec.Name,
		Discount:   rec.Discount,
		Domain:     rec.Domain,
		CouponCode: rec.CouponCode,
		LogoURL:    s.logo,
	})
	if err != nil {
		return fmt.Errorf("render coupon email: %w", err)
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("ZooTechX <%s>", s.from),
		To:      []string{rec.Email},
		Subject: fmt.Sprintf("Your ZooTechX Coupon Code - %d%% OFF on %s", rec.Discount, rec.Domain),
		Html:    html,
		Text:    couponEmailText(rec),
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	s.logger.Info("resend accepted email", zap.String("email_id", sent.Id), zap.String("to", rec.Email))
	return nil
}

func couponEmailText(rec models.SpinRecord) string {
	return fmt.Sprintf(
		"Congratulations, %s! You just won %d%% OFF on %s services.\n\n"+
			"Your coupon code: %s\n\n"+
			"How to redeem:\n"+
			"1. Visit the ZooTechX booth at the event\n"+
			"2. Show this email or mention your coupon code\n"+
			"3. Get your exclusive discount on %s!\n\n"+
			"ZooTechX - Transforming Ideas into Digital Reality\n"+
			"https://www.zootechx.com",
		rec.Name, rec.Discount, rec.Domain, rec.CouponCode, rec.Domain,
	)
}

type couponEmailData struct {
	Name       string
	Discount   int
	Domain     string
	CouponCode string
	LogoURL    string
}

func renderCouponHTML(data couponEmailData) (string, error) {
	var buf bytes.Buffer
	if err := couponEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var couponEmailTmpl = template.Must(template.New("coupon").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>Your ZooTechX Coupon</title></head>
<body style="margin:0;padding:0;font-family:Arial,Helvetica,sans-serif;background-color:#f4f4f4;">
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" border="0" style="background-color:#f4f4f4;padding:20px 0;"><tr><td align="center">
<table role="presentation" width="600" cellspacing="0" cellpadding="0" border="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;box-shadow:0 2px 8px rgba(0,0,0,0.1);">
<tr><td style="background:#000000;padding:30px;text-align:center;">
<a href="https://www.zootechx.com" target="_blank" style="text-decoration:none;"><img src="{{.LogoURL}}" alt="ZooTechX" style="max-width:250px;height:auto;"></a>
<p style="color:#888;margin:10px 0 0 0;font-size:14px;">Transforming Ideas into Digital Reality</p>
</td></tr>
<tr><td style="background:linear-gradient(135deg,#00d4ff 0%,#7b2dff 100%);padding:25px;text-align:center;">
<h2 style="color:#ffffff;margin:0;font-size:24px;">&#127881; Congratulations, {{.Name}}!</h2>
</td></tr>
<tr><td style="padding:40px 30px;">
<p style="color:#333;font-size:18px;margin:0 0 20px 0;text-align:center;">You just won <strong style="color:#00d4ff;font-size:24px;">{{.Discount}}% OFF</strong> on <strong>{{.Domain}}</strong> services!</p>
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" border="0" style="margin:30px 0;"><tr><td align="center">
<table role="presentation" cellspacing="0" cellpadding="0" border="0" style="background-color:#f8f9fa;border:2px dashed #00d4ff;border-radius:12px;padding:25px 40px;"><tr><td align="center">
<p style="color:#666;font-size:12px;margin:0 0 10px 0;text-transform:uppercase;letter-spacing:2px;">Your Coupon Code</p>
<p style="color:#1a1a2e;font-size:32px;font-weight:bold;margin:0;letter-spacing:3px;">{{.CouponCode}}</p>
</td></tr></table>
</td></tr></table>
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" border="0" style="background-color:#f8f9fa;border-radius:8px;padding:20px;margin-top:20px;"><tr><td>
<h3 style="color:#1a1a2e;margin:0 0 15px 0;font-size:16px;">&#128203; How to Redeem</h3>
<p style="color:#555;margin:8px 0;font-size:14px;">1. Visit the ZooTechX booth at the event</p>
<p style="color:#555;margin:8px 0;font-size:14px;">2. Show this email or mention your coupon code</p>
<p style="color:#555;margin:8px 0;font-size:14px;">3. Get your exclusive discount on {{.Domain}}!</p>
</td></tr></table>
</td></tr>
<tr><td style="background-color:#000000;padding:25px;text-align:center;">
<p style="color:#888;font-size:12px;margin:0 0 10px 0;">Transforming Ideas into Digital Reality</p>
<p style="color:#00d4ff;font-size:12px;margin:0 0 10px 0;"><a href="https://www.zootechx.com" target="_blank" style="color:#00d4ff;text-decoration:none;">www.zootechx.com</a></p>
<p style="color:#666;font-size:11px;margin:0;">&copy; 2025 ZooTechX. All rights reserved.</p>
</td></tr>
</table>
</td></tr></table>
</body>
</html>`))
