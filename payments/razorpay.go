package payments

import (
	"errors"
	"math"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// ErrNotConfigured indicates the gateway credentials are absent from the
// runtime configuration. This is an operator problem, not a client one.
var ErrNotConfigured = errors.New("payments: razorpay credentials not configured")

const (
	defaultCurrency = "INR"

	// minAmountMinor is the smallest chargeable amount in minor units.
	// Smaller inputs are raised to it, never rejected.
	minAmountMinor = 1000
)

// Client wraps the Razorpay SDK. It creates gateway orders and exposes the
// public key id; it never verifies payments and persists nothing locally.
type Client struct {
	api   *razorpay.Client
	keyID string
}

func NewClient(keyID, keySecret string) (*Client, error) {
	if keyID == "" || keySecret == "" {
		return nil, ErrNotConfigured
	}
	return &Client{
		api:   razorpay.NewClient(keyID, keySecret),
		keyID: keyID,
	}, nil
}

// KeyID is the public key the frontend hands to the Razorpay checkout widget.
func (c *Client) KeyID() string {
	return c.keyID
}

// NormalizeAmount converts a major-unit amount to minor units: ×100, floored,
// clamped to the gateway minimum.
func NormalizeAmount(amount float64) int64 {
	minor := int64(math.Floor(amount * 100))
	if minor < minAmountMinor {
		minor = minAmountMinor
	}
	return minor
}

// CreateOrder creates a gateway order for the normalized amount and returns
// the raw gateway response. When no receipt is supplied a random one is
// generated, so repeated calls are not deduplicated here.
func (c *Client) CreateOrder(amount float64, currency, receipt string) (map[string]interface{}, error) {
	if currency == "" {
		currency = defaultCurrency
	}
	if receipt == "" {
		receipt = uuid.NewString()
	}

	data := map[string]interface{}{
		"amount":   NormalizeAmount(amount),
		"currency": currency,
		"receipt":  receipt,
		"notes":    map[string]interface{}{"source": "storefront"},
	}
	return c.api.Order.Create(data, nil)
}
