package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const fast2smsEndpoint = "https://www.fast2sms.com/dev/bulkV2"

// Fast2SMS sends through the Fast2SMS bulk API (primary Indian gateway).
// It takes the bare 10-digit number without a country code.
type Fast2SMS struct {
	apiKey   string
	endpoint string
	client   *resty.Client
}

// NewFast2SMS creates the Fast2SMS provider. Empty apiKey = unconfigured.
func NewFast2SMS(apiKey string) *Fast2SMS {
	return &Fast2SMS{apiKey: apiKey, endpoint: fast2smsEndpoint, client: resty.New()}
}

func (f *Fast2SMS) Name() string { return "fast2sms" }

func (f *Fast2SMS) Configured() bool { return f.apiKey != "" }

func (f *Fast2SMS) Send(ctx context.Context, phone, message string) error {
	var result struct {
		Return  bool            `json:"return"`
		Message json.RawMessage `json:"message"`
	}
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("authorization", f.apiKey).
		SetFormData(map[string]string{
			"route":    "q",
			"message":  message,
			"numbers":  phone,
			"language": "english",
		}).
		SetResult(&result).
		Post(f.endpoint)
	if err != nil {
		return fmt.Errorf("fast2sms: %w", err)
	}
	if resp.StatusCode() != 200 || !result.Return {
		return fmt.Errorf("fast2sms: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
