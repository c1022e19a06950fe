// Package mail dispatches transactional email through an HTTP mail endpoint.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"prostore/config"
	"prostore/internal/domain/entity"
	"prostore/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const requestTimeout = 30 * time.Second

// receiptMailer posts purchase receipts to the configured mail endpoint.
type receiptMailer struct {
	endpoint   string
	sender     string
	httpClient *http.Client
	logger     *slog.Logger
}

// MailerParams holds dependencies for the receipt mailer, injected by Fx
type MailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewReceiptMailer is the constructor for the HTTP receipt mailer.
func NewReceiptMailer(params MailerParams) (service.ReceiptMailer, error) {
	if params.Config.Mail == nil || params.Config.Mail.Endpoint == "" {
		return nil, errors.New("mail endpoint must be configured")
	}

	return &receiptMailer{
		endpoint:   params.Config.Mail.Endpoint,
		sender:     params.Config.Mail.Sender,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     params.Logger,
	}, nil
}

type receiptLine struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Qty   int    `json:"qty"`
	Price string `json:"price"`
}

type receiptMessage struct {
	From          string        `json:"from"`
	To            string        `json:"to"`
	Subject       string        `json:"subject"`
	OrderID       string        `json:"order_id"`
	CreatedAt     string        `json:"created_at"`
	Items         []receiptLine `json:"items"`
	ItemsPrice    string        `json:"items_price"`
	ShippingPrice string        `json:"shipping_price"`
	TaxPrice      string        `json:"tax_price"`
	TotalPrice    string        `json:"total_price"`
}

// SendPurchaseReceipt sends the receipt for a paid order to its customer.
func (m *receiptMailer) SendPurchaseReceipt(ctx context.Context, order *entity.Order) error {
	lines := make([]receiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, receiptLine{
			Name:  item.Name,
			Slug:  item.Slug,
			Qty:   item.Qty,
			Price: item.Price.StringFixed(2),
		})
	}

	message := receiptMessage{
		From:          m.sender,
		To:            order.UserEmail,
		Subject:       "Order Confirmation " + order.ID.String(),
		OrderID:       order.ID.String(),
		CreatedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
		Items:         lines,
		ItemsPrice:    order.ItemsPrice.StringFixed(2),
		ShippingPrice: order.ShippingPrice.StringFixed(2),
		TaxPrice:      order.TaxPrice.StringFixed(2),
		TotalPrice:    order.TotalPrice.StringFixed(2),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "mail request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return errors.Errorf("mail endpoint returned %d: %s", resp.StatusCode, string(detail))
	}

	m.logger.Info("Purchase receipt dispatched",
		slog.String("order_id", order.ID.String()),
		slog.String("to", order.UserEmail),
	)

	return nil
}
