package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const brevoSendURL = "https://api.brevo.com/v3/smtp/email"

type Notifier interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, htmlContent string) error
}

type BrevoService struct {
	apiKey      string
	senderEmail string
	senderName  string
	endpoint    string
	client      *http.Client
	log         *zap.Logger
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// NewEmailService returns a Brevo-backed notifier, or a no-op one when the
// API key or sender is missing.
func NewEmailService(apiKey, senderEmail, senderName string, log *zap.Logger) Notifier {
	if apiKey == "" || senderEmail == "" {
		log.Warn("Email service not configured, notifications disabled")
		return Disabled{}
	}
	log.Info("Email service initialized", zap.String("sender", senderEmail))
	return &BrevoService{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		endpoint:    brevoSendURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

func (s *BrevoService) SendEmail(ctx context.Context, toName, toEmail, subject, htmlContent string) error {
	at := strings.Index(toEmail, "@")
	if at <= 0 {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}
	if toName == "" {
		toName = toEmail[:at]
	}

	body, err := json.Marshal(brevoPayload{
		Sender:      map[string]string{"name": s.senderName, "email": s.senderEmail},
		To:          []map[string]string{{"email": toEmail, "name": toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo returned status %d: %s", resp.StatusCode, string(respBody))
	}

	s.log.Debug("Email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

type Disabled struct{}

func (Disabled) SendEmail(context.Context, string, string, string, string) error { return nil }

// SendAsync fires the email in the background; failures are only logged.
func SendAsync(n Notifier, log *zap.Logger, toName, toEmail, subject, htmlContent string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := n.SendEmail(ctx, toName, toEmail, subject, htmlContent); err != nil {
			log.Error("Failed to send email", zap.String("to", toEmail), zap.Error(err))
		}
	}()
}
