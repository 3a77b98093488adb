package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// tokenCache holds an OAuth client-credentials token until shortly before it
// expires.
type tokenCache struct {
	mu     sync.RWMutex
	token  string
	expiry time.Time
	now    func() time.Time
}

func (tc *tokenCache) get(ctx context.Context, fetch func(ctx context.Context) (*tokenResponse, error)) (string, error) {
	tc.mu.RLock()
	if tc.token != "" && tc.now().Before(tc.expiry) {
		token := tc.token
		tc.mu.RUnlock()
		return token, nil
	}
	tc.mu.RUnlock()

	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.token != "" && tc.now().Before(tc.expiry) {
		return tc.token, nil
	}

	resp, err := fetch(ctx)
	if err != nil {
		return "", err
	}

	ttl := time.Duration(resp.ExpiresIn) * time.Second
	if ttl > 5*time.Minute {
		ttl -= 5 * time.Minute
	}
	tc.token = resp.AccessToken
	tc.expiry = tc.now().Add(ttl)
	return tc.token, nil
}

func fetchClientCredentials(ctx context.Context, client *http.Client, tokenURL, clientID, clientSecret string) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(clientID, clientSecret)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned non-200 status: %s", resp.Status)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned an empty access token")
	}
	return &tr, nil
}
