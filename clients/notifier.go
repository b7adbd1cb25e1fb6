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

// Notification is the event shape the notification service accepts.
// UserID is the acting user, Receivers the users to deliver to.
type Notification struct {
	NotificationType string   `json:"notification_type"`
	Title            string   `json:"title"`
	Text             string   `json:"text"`
	UserID           string   `json:"user_id"`
	Receivers        []string `json:"receivers"`
}

// Notification types the service accepts. The mixed languages follow
// the receiving side's contract.
const (
	NotifyTypeFollow       = "Подписка"
	NotifyTypeSubscription = "Subscription"
	NotifyTypeCourse       = "Course"
	NotifyTypeLesson       = "Урок"
	NotifyTypeAchievement  = "Achievement"
	NotifyTypeGraduation   = "Graduation"
)

// NotifierClient delivers events to the notification sibling service.
type NotifierClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewNotifierClient ...
func NewNotifierClient(baseURL, token string) *NotifierClient {
	return &NotifierClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Send posts one notification event.
func (c *NotifierClient) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
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
		return models.Upstream(fmt.Sprintf("notifier unreachable: %s", err))
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return models.Upstream(fmt.Sprintf("notifier returned %d", res.StatusCode))
	}
	return nil
}
