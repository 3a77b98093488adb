package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type StripeService struct {
	apiBase   string
	secretKey string
	client    *http.Client
	log       *zap.Logger
}

func NewStripeService(apiBase, secretKey string, log *zap.Logger) *StripeService {
	return &StripeService{
		apiBase:   strings.TrimRight(apiBase, "/"),
		secretKey: secretKey,
		client:    defaultHTTPClient(),
		log:       log,
	}
}

type stripePaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type stripeErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *StripeService) CreateIntent(ctx context.Context, amount float64, currency string) (*Intent, error) {
	cents, err := toMinorUnits(amount)
	if err != nil {
		return nil, err
	}
	if s.secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(cents, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Add("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBase+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send stripe request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr stripeErrorBody
		_ = json.Unmarshal(body, &apiErr)
		s.log.Warn("Stripe rejected payment intent",
			zap.Int("status", resp.StatusCode),
			zap.String("error", apiErr.Error.Message))
		return nil, fmt.Errorf("stripe returned status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}

	var pi stripePaymentIntent
	if err := json.Unmarshal(body, &pi); err != nil {
		return nil, fmt.Errorf("failed to decode stripe response: %w", err)
	}

	s.log.Info("Payment intent created", zap.String("intent_id", pi.ID), zap.Int64("amount", cents))
	return &Intent{Provider: "stripe", ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
