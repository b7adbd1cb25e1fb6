package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"eduone-core/models"
)

// Mail is the message shape the email sibling service accepts.
type Mail struct {
	To       string `json:"to"`
	Template string `json:"template"`
	Subject  string `json:"subject,omitempty"`
	Link     string `json:"link,omitempty"`
}

// Mail templates this service sends.
const (
	MailTemplateVerify      = "verify_account"
	MailTemplatePreRegister = "pre_register"
)

// MailerClient delivers outbound email through the email sibling service.
type MailerClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewMailerClient ...
func NewMailerClient(baseURL, token string) *MailerClient {
	return &MailerClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Send posts one mail message.
func (c *MailerClient) Send(ctx context.Context, m Mail) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.http.Do(req)
	if err != nil {
		return models.Upstream(fmt.Sprintf("mailer unreachable: %s", err))
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return models.Upstream(fmt.Sprintf("mailer returned %d", res.StatusCode))
	}
	return nil
}
