package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// Poster delivers a rendered message. It reports success instead of an error.
type Poster interface {
	Post(ctx context.Context, text string) bool
}

// WebhookPoster posts {"text": ...} to an incoming-webhook URL (Mattermost, Slack).
type WebhookPoster struct {
	URL    string
	Client *http.Client
}

func NewWebhookPoster(url string, client *http.Client) *WebhookPoster {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookPoster{URL: url, Client: client}
}

type webhookBody struct {
	Text string `json:"text"`
}

func (p *WebhookPoster) Post(ctx context.Context, text string) bool {
	status, err := p.post(ctx, text)
	if err != nil {
		log.Printf("webhook post: %v", err)
		return false
	}
	log.Printf("Response Code: %d", status)
	return status >= 200 && status <= 299
}

func (p *WebhookPoster) post(ctx context.Context, text string) (int, error) {
	body, err := json.Marshal(webhookBody{Text: text})
	if err != nil {
		return 0, fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// MultiPoster posts to every poster; it succeeds only when all of them do.
type MultiPoster []Poster

func (m MultiPoster) Post(ctx context.Context, text string) bool {
	ok := true
	for _, p := range m {
		if !p.Post(ctx, text) {
			ok = false
		}
	}
	return ok
}
