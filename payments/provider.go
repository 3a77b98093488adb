package payments

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"
)

var ErrInvalidAmount = errors.New("amount must be a positive number")

// Intent is what the web client needs to confirm a payment with the provider.
type Intent struct {
	Provider     string `json:"provider"`
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

type IntentProvider interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (*Intent, error)
}

// toMinorUnits converts a fee in major currency units into cents.
func toMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(amount * 100)
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if cents < 1 || cents >= math.MaxInt64 {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
