package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SquareClient implements Charger over Square's Payments API. Only the
// two calls the booking flow needs are wired: create payment and refund.
type SquareClient struct {
	baseURL     string
	accessToken string
	locationID  string
	httpClient  *http.Client
	log         *zap.Logger
}

func NewSquareClient(cfg utils.PaymentConfig, log *zap.Logger) *SquareClient {
	return &SquareClient{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		locationID:  cfg.LocationID,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		log:         log.With(zap.String("service", "square")),
	}
}

type moneyPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createPaymentRequest struct {
	SourceID       string       `json:"source_id"`
	IdempotencyKey string       `json:"idempotency_key"`
	AmountMoney    moneyPayload `json:"amount_money"`
	LocationID     string       `json:"location_id"`
	ReferenceID    string       `json:"reference_id,omitempty"`
}

type paymentEnvelope struct {
	Payment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"payment"`
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

func (c *SquareClient) Charge(ctx context.Context, cardToken string, amount Amount, reference string) (string, error) {
	body := createPaymentRequest{
		SourceID:       cardToken,
		IdempotencyKey: uuid.New().String(),
		AmountMoney:    moneyPayload{Amount: amount.Cents(), Currency: amount.Currency()},
		LocationID:     c.locationID,
		ReferenceID:    reference,
	}

	var env paymentEnvelope
	if err := c.post(ctx, "/v2/payments", body, &env); err != nil {
		return "", err
	}

	if len(env.Errors) > 0 {
		c.log.Warn("Payment declined",
			zap.String("reference", reference),
			zap.String("code", env.Errors[0].Code),
			zap.String("detail", env.Errors[0].Detail),
		)
		return "", fmt.Errorf("%w: %s", ErrDeclined, env.Errors[0].Detail)
	}

	if env.Payment.Status != "COMPLETED" && env.Payment.Status != "APPROVED" {
		return "", fmt.Errorf("%w: payment status %s", ErrDeclined, env.Payment.Status)
	}

	c.log.Info("Payment captured",
		zap.String("payment_id", env.Payment.ID),
		zap.String("reference", reference),
		zap.String("amount", amount.String()),
	)

	return env.Payment.ID, nil
}

type refundRequest struct {
	IdempotencyKey string       `json:"idempotency_key"`
	PaymentID      string       `json:"payment_id"`
	AmountMoney    moneyPayload `json:"amount_money"`
	Reason         string       `json:"reason,omitempty"`
}

func (c *SquareClient) Refund(ctx context.Context, paymentID string, amount Amount, reason string) error {
	body := refundRequest{
		IdempotencyKey: uuid.New().String(),
		PaymentID:      paymentID,
		AmountMoney:    moneyPayload{Amount: amount.Cents(), Currency: amount.Currency()},
		Reason:         reason,
	}

	var env paymentEnvelope
	if err := c.post(ctx, "/v2/refunds", body, &env); err != nil {
		return err
	}

	if len(env.Errors) > 0 {
		return fmt.Errorf("refund payment %s: %s", paymentID, env.Errors[0].Detail)
	}

	c.log.Info("Payment refunded",
		zap.String("payment_id", paymentID),
		zap.String("reason", reason),
	)

	return nil
}

func (c *SquareClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call payment provider: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode payment response: %w", err)
	}

	return nil
}
