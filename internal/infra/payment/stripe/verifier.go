// Package stripe implements webhook signature verification for Stripe deliveries.
package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"prostore/config"
	"prostore/internal/domain/service"

	"github.com/pkg/errors"
)

// defaultTolerance bounds the allowed clock skew on the signed timestamp,
// limiting replay of captured webhook payloads.
const defaultTolerance = 5 * time.Minute

// ErrInvalidSignature is returned when no signature matches the payload.
var ErrInvalidSignature = errors.New("webhook signature verification failed")

// verifier checks the Stripe-Signature header against the raw payload.
type verifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier is the constructor for the Stripe webhook verifier.
func NewVerifier(cfg *config.Config) service.StripeWebhookVerifier {
	return &verifier{
		secret:    cfg.Stripe.WebhookSecret,
		tolerance: defaultTolerance,
		now:       time.Now,
	}
}

type eventPayload struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID             string `json:"id"`
			Status         string `json:"status"`
			Amount         int64  `json:"amount"`
			BillingDetails struct {
				Email string `json:"email"`
			} `json:"billing_details"`
			Metadata struct {
				OrderID string `json:"orderId"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// VerifyAndParse checks the signature header against the payload and returns
// the decoded event.
func (v *verifier) VerifyAndParse(payload []byte, signatureHeader string) (*service.StripeChargeEvent, error) {
	timestamp, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	if v.tolerance > 0 {
		age := v.now().Sub(time.Unix(timestamp, 0))
		if age > v.tolerance || age < -v.tolerance {
			return nil, errors.Wrap(ErrInvalidSignature, "timestamp outside tolerance")
		}
	}

	expected := computeSignature(v.secret, timestamp, payload)
	if !anySignatureMatches(signatures, expected) {
		return nil, ErrInvalidSignature
	}

	var event eventPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.Wrap(err, "failed to decode webhook payload")
	}

	return &service.StripeChargeEvent{
		Type:         event.Type,
		ChargeID:     event.Data.Object.ID,
		OrderID:      event.Data.Object.Metadata.OrderID,
		Status:       event.Data.Object.Status,
		EmailAddress: event.Data.Object.BillingDetails.Email,
		Amount:       event.Data.Object.Amount,
	}, nil
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=<hex>...]".
func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64 = -1
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}

		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, errors.Wrap(ErrInvalidSignature, "malformed timestamp")
			}
			timestamp = parsed
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, errors.Wrap(ErrInvalidSignature, "missing timestamp or signature")
	}

	return timestamp, signatures, nil
}

func computeSignature(secret string, timestamp int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)

	return mac.Sum(nil)
}

func anySignatureMatches(signatures []string, expected []byte) bool {
	for _, signature := range signatures {
		decoded, err := hex.DecodeString(signature)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return true
		}
	}

	return false
}
