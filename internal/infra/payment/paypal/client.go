// Package paypal implements the PayPal checkout-order gateway over its REST API.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prostore/config"
	"prostore/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultTimeout = 15 * time.Second
	currencyUSD    = "USD"
)

// client talks to the PayPal REST API using client-credential tokens.
type client struct {
	apiURL       string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// NewClient is the constructor for the PayPal gateway.
func NewClient(cfg *config.Config) service.PayPalGateway {
	return &client{
		apiURL:       strings.TrimRight(cfg.PayPal.APIURL, "/"),
		clientID:     cfg.PayPal.ClientID,
		clientSecret: cfg.PayPal.ClientSecret,
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				Amount struct {
					Value string `json:"value"`
				} `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// CreateOrder opens a provider-side order for the given amount in USD.
func (c *client) CreateOrder(ctx context.Context, amount string) (*service.PayPalOrder, error) {
	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]string{
				"currency_code": currencyUSD,
				"value":         amount,
			},
		}},
	}

	var resp orderResponse
	if err := c.post(ctx, "/v2/checkout/orders", body, &resp); err != nil {
		return nil, err
	}

	return &service.PayPalOrder{ID: resp.ID, Status: resp.Status}, nil
}

// CaptureOrder captures the funds of an approved provider-side order.
func (c *client) CaptureOrder(ctx context.Context, providerOrderID string) (*service.PayPalCapture, error) {
	var resp orderResponse
	if err := c.post(ctx, "/v2/checkout/orders/"+providerOrderID+"/capture", nil, &resp); err != nil {
		return nil, err
	}

	capture := &service.PayPalCapture{
		ID:           resp.ID,
		Status:       resp.Status,
		EmailAddress: resp.Payer.EmailAddress,
	}
	if len(resp.PurchaseUnits) > 0 && len(resp.PurchaseUnits[0].Payments.Captures) > 0 {
		capture.AmountValue = resp.PurchaseUnits[0].Payments.Captures[0].Amount.Value
	}

	return capture, nil
}

// post issues an authenticated JSON POST against the PayPal API.
func (c *client) post(ctx context.Context, path string, body any, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "paypal request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return errors.Errorf("paypal returned %d: %s", resp.StatusCode, string(message))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "failed to decode paypal response")
		}
	}

	return nil
}

// accessToken exchanges the client credentials for a bearer token.
func (c *client) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to build token request")
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "paypal token request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return "", errors.Errorf("paypal token endpoint returned %d: %s", resp.StatusCode, string(message))
	}

	var tokenResp accessTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("paypal token response missing access_token")
	}

	return tokenResp.AccessToken, nil
}
