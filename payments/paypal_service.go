package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PayPalService struct {
	apiBase      string
	clientID     string
	clientSecret string
	client       *http.Client
	tokens       *tokenCache
	log          *zap.Logger
}

func NewPayPalService(apiBase, clientID, clientSecret string, log *zap.Logger) *PayPalService {
	return &PayPalService{
		apiBase:      strings.TrimRight(apiBase, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       defaultHTTPClient(),
		tokens:       &tokenCache{now: time.Now},
		log:          log,
	}
}

type payPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (p *PayPalService) accessToken(ctx context.Context) (string, error) {
	return p.tokens.get(ctx, func(ctx context.Context) (*tokenResponse, error) {
		p.log.Info("Fetching new PayPal access token")
		return fetchClientCredentials(ctx, p.client, p.apiBase+"/v1/oauth2/token", p.clientID, p.clientSecret)
	})
}

// CreateIntent opens a CAPTURE order; the order id doubles as the client
// secret the PayPal JS SDK approves.
func (p *PayPalService) CreateIntent(ctx context.Context, amount float64, currency string) (*Intent, error) {
	if _, err := toMinorUnits(amount); err != nil {
		return nil, err
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get paypal access token: %w", err)
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": strings.ToUpper(currency),
					"value":         fmt.Sprintf("%.2f", amount),
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal paypal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiBase+"/v2/checkout/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create paypal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("PayPal-Request-Id", uuid.NewString())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send paypal request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create order: %s", string(respBody))
	}

	var order payPalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode paypal order: %w", err)
	}

	p.log.Info("PayPal order created", zap.String("order_id", order.ID), zap.String("status", order.Status))
	return &Intent{Provider: "paypal", ID: order.ID, ClientSecret: order.ID}, nil
}
