package notify

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const msg91Endpoint = "https://api.msg91.com/api/sendhttp.php"

// MSG91 sends through the MSG91 HTTP API (secondary Indian gateway). It
// dials the number with a bare 91 country code, no plus sign.
type MSG91 struct {
	authKey  string
	sender   string
	endpoint string
	client   *resty.Client
}

// NewMSG91 creates the MSG91 provider. Empty authKey = unconfigured.
func NewMSG91(authKey, sender string) *MSG91 {
	return &MSG91{authKey: authKey, sender: sender, endpoint: msg91Endpoint, client: resty.New()}
}

func (m *MSG91) Name() string { return "msg91" }

func (m *MSG91) Configured() bool { return m.authKey != "" }

func (m *MSG91) Send(ctx context.Context, phone, message string) error {
	mobiles := phone
	if len(mobiles) == 10 {
		mobiles = "91" + mobiles
	}
	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"authkey": m.authKey,
			"mobiles": mobiles,
			"message": message,
			"sender":  m.sender,
			"route":   "4", // transactional
			"country": "91",
		}).
		Get(m.endpoint)
	if err != nil {
		return fmt.Errorf("msg91: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("msg91: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
