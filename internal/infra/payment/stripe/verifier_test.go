package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"prostore/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func signedHeader(t *testing.T, secret string, timestamp int64, payload []byte) string {
	t.Helper()

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)

	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func newTestVerifier() *verifier {
	v := NewVerifier(&config.Config{
		Stripe: &config.StripeConfig{WebhookSecret: testSecret},
	}).(*verifier)

	return v
}

func TestVerifier_VerifyAndParse_ValidSignature(t *testing.T) {
	v := newTestVerifier()
	payload := []byte(`{
		"type": "charge.succeeded",
		"data": {"object": {
			"id": "ch_123",
			"status": "succeeded",
			"amount": 13798,
			"billing_details": {"email": "jane@example.com"},
			"metadata": {"orderId": "4b4c6a4e-8f61-4f3c-9f6a-111111111111"}
		}}
	}`)

	event, err := v.VerifyAndParse(payload, signedHeader(t, testSecret, time.Now().Unix(), payload))
	require.NoError(t, err)
	assert.Equal(t, "charge.succeeded", event.Type)
	assert.Equal(t, "ch_123", event.ChargeID)
	assert.Equal(t, "4b4c6a4e-8f61-4f3c-9f6a-111111111111", event.OrderID)
	assert.Equal(t, int64(13798), event.Amount)
	assert.Equal(t, "jane@example.com", event.EmailAddress)
}

func TestVerifier_VerifyAndParse_WrongSecret(t *testing.T) {
	v := newTestVerifier()
	payload := []byte(`{"type":"charge.succeeded"}`)

	_, err := v.VerifyAndParse(payload, signedHeader(t, "whsec_other", time.Now().Unix(), payload))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifier_VerifyAndParse_TamperedPayload(t *testing.T) {
	v := newTestVerifier()
	payload := []byte(`{"type":"charge.succeeded"}`)
	header := signedHeader(t, testSecret, time.Now().Unix(), payload)

	_, err := v.VerifyAndParse([]byte(`{"type":"charge.refunded"}`), header)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifier_VerifyAndParse_StaleTimestamp(t *testing.T) {
	v := newTestVerifier()
	payload := []byte(`{"type":"charge.succeeded"}`)
	stale := time.Now().Add(-time.Hour).Unix()

	_, err := v.VerifyAndParse(payload, signedHeader(t, testSecret, stale, payload))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifier_VerifyAndParse_MalformedHeader(t *testing.T) {
	v := newTestVerifier()

	_, err := v.VerifyAndParse([]byte(`{}`), "not-a-signature")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
