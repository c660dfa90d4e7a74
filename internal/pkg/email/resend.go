package email

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ResendMailer 通过 Resend HTTP API 发信
type ResendMailer struct {
	client *resty.Client
	from   string
}

func NewResendMailer(baseURL, apiKey, from string) *ResendMailer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &ResendMailer{client: client, from: from}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	var apiErr resendError
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(resendRequest{
			From:    m.from,
			To:      []string{msg.To},
			Subject: msg.Subject,
			HTML:    msg.HTML,
			Text:    msg.Text,
		}).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}

	switch {
	case resp.StatusCode() >= 400 && resp.StatusCode() < 500:
		return Permanent(fmt.Errorf("resend rejected message: status %d: %s", resp.StatusCode(), apiErr.Message))
	case resp.IsError():
		return fmt.Errorf("resend unavailable: status %d", resp.StatusCode())
	}
	return nil
}
