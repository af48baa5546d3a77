package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"presence/internal/ports/output"
)

var _ output.Mailer = (*ResendMailer)(nil)

// ResendMailer delivers report emails through the Resend HTTP API.
type ResendMailer struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

func NewResendMailer(apiKey string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("mailer: api key is empty")
	}
	return &ResendMailer{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type attachment struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"` // marshals to base64, as the API expects
}

type sendRequest struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	Text        string       `json:"text"`
	Attachments []attachment `json:"attachments,omitempty"`
}

func (m *ResendMailer) Send(ctx context.Context, msg output.Message) error {
	body := sendRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.BodyText,
	}
	for _, a := range msg.Attachments {
		body.Attachments = append(body.Attachments, attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("mailer: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mailer: send failed (status %d): %s", resp.StatusCode, detail)
	}

	return nil
}
