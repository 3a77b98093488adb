package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPayPalCreateIntentCachesToken(t *testing.T) {
	var tokenCalls, orderCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			atomic.AddInt32(&tokenCalls, 1)
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client", user)
			assert.Equal(t, "secret", pass)
			_, _ = w.Write([]byte(`{"access_token":"A21","expires_in":32400}`))
		case "/v2/checkout/orders":
			atomic.AddInt32(&orderCalls, 1)
			assert.Equal(t, "Bearer A21", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("PayPal-Request-Id"))

			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "CAPTURE", body["intent"])
			unit := body["purchase_units"].([]interface{})[0].(map[string]interface{})
			amount := unit["amount"].(map[string]interface{})
			assert.Equal(t, "USD", amount["currency_code"])
			assert.Equal(t, "12.00", amount["value"])

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"ORDER-1","status":"CREATED"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc := NewPayPalService(srv.URL, "client", "secret", zap.NewNop())
	for i := 0; i < 2; i++ {
		intent, err := svc.CreateIntent(context.Background(), 12, "usd")
		require.NoError(t, err)
		assert.Equal(t, "paypal", intent.Provider)
		assert.Equal(t, "ORDER-1", intent.ID)
		assert.Equal(t, "ORDER-1", intent.ClientSecret)
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&tokenCalls))
	assert.EqualValues(t, 2, atomic.LoadInt32(&orderCalls))
}

func TestPayPalTokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewPayPalService(srv.URL, "client", "wrong", zap.NewNop())
	_, err := svc.CreateIntent(context.Background(), 12, "usd")
	assert.ErrorContains(t, err, "access token")
}

func TestPayPalRejectsBadAmount(t *testing.T) {
	svc := NewPayPalService("http://unused", "client", "secret", zap.NewNop())
	_, err := svc.CreateIntent(context.Background(), -1, "usd")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
