package notification

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ExpoPushSender posts messages to the Expo push API. Delivery is
// best-effort; the caller logs failures and moves on.
type ExpoPushSender struct {
	client   *resty.Client
	endpoint string
}

func NewExpoPushSender(endpoint string) *ExpoPushSender {
	return &ExpoPushSender{
		client:   resty.New(),
		endpoint: endpoint,
	}
}

type expoPushMessage struct {
	To    string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

func (s *ExpoPushSender) Send(ctx context.Context, token, title, body string, data map[string]any) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(expoPushMessage{To: token, Title: title, Body: body, Data: data}).
		Post(s.endpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode())
	}
	return nil
}
